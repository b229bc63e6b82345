package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/i18n"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	// Emojis with colors
	WizardEmoji  = "✨"
	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	InfoEmoji    = Info.Sprint("ℹ️")
)

var emojiEnabled = true

// SetEmojiEnabled toggles the emoji prefixes on all output helpers.
// Wired to the use_emoji config key and the --no-emoji flag.
func SetEmojiEnabled(enabled bool) {
	emojiEnabled = enabled
}

func emojiPrefix(emoji string) string {
	if !emojiEnabled {
		return ""
	}
	return emoji + " "
}

// SmartSpinner is a spinner with enhanced capabilities
type SmartSpinner struct {
	spinner *spinner.Spinner
}

// NewSmartSpinner creates a new spinner with an initial message
func NewSmartSpinner(initialMessage string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+emojiPrefix(WizardEmoji)+initialMessage),
	)
	return &SmartSpinner{spinner: s}
}

func (s *SmartSpinner) Start() {
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
}

func (s *SmartSpinner) UpdateMessage(msg string) {
	s.spinner.Suffix = " " + emojiPrefix(WizardEmoji) + msg
}

func (s *SmartSpinner) Success(msg string) {
	s.Stop()
	PrintSuccess(os.Stdout, msg)
}

func (s *SmartSpinner) Error(msg string) {
	s.Stop()
	PrintError(os.Stdout, msg)
}

func (s *SmartSpinner) Warning(msg string) {
	s.Stop()
	PrintWarning(msg)
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s%s\n", emojiPrefix(SuccessEmoji), Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s%s\n", emojiPrefix(Error.Sprint("❌")), Error.Sprint(msg))
}

func PrintWarning(msg string) {
	fmt.Printf("%s%s\n", emojiPrefix(WarningEmoji), Warning.Sprint(msg))
}

func PrintInfo(msg string) {
	fmt.Printf("%s%s\n", emojiPrefix(InfoEmoji), Info.Sprint(msg))
}

func PrintSectionBanner(title string) {
	separator := color.New(color.FgCyan).Sprint("━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("\n%s\n", separator)
	fmt.Printf("%s%s\n", emojiPrefix(WizardEmoji), Accent.Sprint(title))
	fmt.Printf("%s\n\n", separator)
}

func PrintDuration(msg string, duration time.Duration) {
	durationStr := Dim.Sprintf("(%s)", duration.Round(10*time.Millisecond))
	fmt.Printf("%s%s %s\n", emojiPrefix(SuccessEmoji), Success.Sprint(msg), durationStr)
}

// PrintCommitMessage renders a commit message with the subject highlighted.
func PrintCommitMessage(message string) {
	subject, body, hasBody := strings.Cut(message, "\n")
	subjectColor := color.New(color.FgWhite, color.Bold)

	fmt.Println()
	fmt.Printf("   %s\n", subjectColor.Sprint(subject))
	if hasBody {
		for _, line := range strings.Split(body, "\n") {
			fmt.Printf("   %s\n", line)
		}
	}
	fmt.Println()
}

// HandleAppError handles an application error and displays it in a friendly way.
// If translations is nil, it will use English defaults.
func HandleAppError(err error, translations ...*i18n.Translations) {
	if err == nil {
		return
	}

	var t *i18n.Translations
	if len(translations) > 0 && translations[0] != nil {
		t = translations[0]
	}

	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		errorColor := color.New(color.FgRed, color.Bold)
		suggestionColor := color.New(color.FgCyan)
		dimColor := color.New(color.FgHiBlack)

		fmt.Println()
		_, _ = errorColor.Printf("%s%s: %s\n", emojiPrefix("❌"), appErr.Type, appErr.Message)

		if appErr.Err != nil {
			_, _ = dimColor.Printf("   Details: %v\n", appErr.Err)
		}

		if appErr.Suggestion != "" {
			fmt.Println()
			tryPrefix := "Try: "
			if t != nil {
				tryPrefix = t.GetMessage("ui_error.try_suggestion", 0, nil)
			}
			_, _ = suggestionColor.Printf("%s%s", emojiPrefix("💡"), tryPrefix)
			lines := strings.Split(appErr.Suggestion, "\n")
			for i, line := range lines {
				if i == 0 {
					fmt.Println(line)
				} else {
					fmt.Printf("       %s\n", line)
				}
			}
		}
		fmt.Println()

		return
	}

	PrintError(os.Stdout, err.Error())
}

func PrintKeyValue(key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	fmt.Printf("   %s %s\n", keyColored, valueColored)
}

func AskConfirmation(question string) bool {
	fmt.Printf("\n%s (y/n): ", Info.Sprint(question))
	var response string
	_, _ = fmt.Scanln(&response)
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes" || response == "s" || response == "si"
}

// FileChange is one changed file with its line counts, as reported by the
// diff reader.
type FileChange struct {
	Path      string
	Additions int
	Deletions int
}

// PrintFileTree shows the changed files as a directory tree with per-file
// line counts.
func PrintFileTree(changes []FileChange, headerMessage string) {
	if len(changes) == 0 {
		return
	}

	fmt.Printf("\n%s\n", headerMessage)
	printTree(buildFileTree(changes), "", true)
}

// treeNode represents a node in the file tree
type treeNode struct {
	name     string
	isFile   bool
	change   *FileChange
	children map[string]*treeNode
}

// buildFileTree builds a directory tree
func buildFileTree(changes []FileChange) *treeNode {
	root := &treeNode{
		children: make(map[string]*treeNode),
	}

	for i := range changes {
		change := &changes[i]
		parts := strings.Split(change.Path, "/")
		current := root

		for j, part := range parts {
			isFile := j == len(parts)-1

			if current.children[part] == nil {
				node := &treeNode{
					name:     part,
					isFile:   isFile,
					children: make(map[string]*treeNode),
				}
				if isFile {
					node.change = change
				}
				current.children[part] = node
			}
			current = current.children[part]
		}
	}
	return root
}

// printTree prints the tree recursively
func printTree(node *treeNode, prefix string, isLast bool) {
	if node.name != "" {
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		name := node.name
		if !node.isFile {
			name = Info.Sprint(name + "/")
		}

		stats := ""
		if node.isFile && node.change != nil {
			statsColor := color.New(color.FgGreen)
			if node.change.Deletions > node.change.Additions {
				statsColor = color.New(color.FgRed)
			}
			stats = statsColor.Sprintf(" (+%d, -%d)", node.change.Additions, node.change.Deletions)
		}

		fmt.Printf("%s%s%s%s\n", prefix, connector, name, stats)
	}

	childPrefix := prefix
	if node.name != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	children := sortedChildren(node)
	for i, child := range children {
		printTree(child, childPrefix, i == len(children)-1)
	}
}

// sortedChildren orders a node's children: directories first, then files,
// each group alphabetically.
func sortedChildren(node *treeNode) []*treeNode {
	children := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		children = append(children, child)
	}

	slices.SortFunc(children, func(a, b *treeNode) int {
		if a.isFile != b.isFile {
			if a.isFile {
				return 1
			}
			return -1
		}
		return strings.Compare(a.name, b.name)
	})
	return children
}
