package i18n

var defaultMessages = `
	[app_description]
	other = "Analyzes your staged changes and generates a conventional commit message with AI"

	[suggest_command_usage]
	other = "Analyze changes and generate a commit message"

	[suggest_command_description]
	other = "Walks the repository diff, scores its complexity, and asks the configured model for a conventional commit message"

	[suggest_path_flag_usage]
	other = "Path to the git repository"

	[suggest_max_size_flag_usage]
	other = "Maximum file size to analyze, in KB"

	[suggest_max_files_flag_usage]
	other = "Maximum number of files to analyze"

	[suggest_yes_flag_usage]
	other = "Commit automatically without confirmation"

	[suggest_model_flag_usage]
	other = "Model to use, overrides complexity-based selection"

	[suggest_lang_flag_usage]
	other = "Language for messages (en, es)"

	[suggest_no_emoji_flag_usage]
	other = "Disable emoji in output"

	[analyzing_changes]
	other = "Analyzing changes..."

	[generating_message]
	other = "Generating commit message..."

	[retrying_generation]
	other = "Retrying generation (attempt {{.Attempt}})..."

	[staged_files_count]
	one = "{{.Count}} staged file"
	other = "{{.Count}} staged files"

	[confirm_commit]
	other = "Commit with this message?"

	[commit_created]
	other = "Commit created successfully"

	[commit_skipped_hint]
	other = "Commit skipped. Run this when ready:"

	[suggestion_generation_error]
	other = "Could not generate a commit message: {{.Error}}"

	[ui.generating_banner]
	other = "commit-wizard"

	[ui.message_ready]
	other = "Commit message ready"

	[ui.label_complexity]
	other = "complexity"

	[ui.label_type]
	other = "type"

	[ui.label_scope]
	other = "scope"

	[ui.label_model]
	other = "model"

	[ui.label_attempts]
	other = "attempts"

	[ui_error.try_suggestion]
	other = "Try: "

	[config_command_usage]
	other = "Show or change configuration"

	[config_show_usage]
	other = "Print the current configuration"

	[config_set_lang_usage]
	other = "Set the interface language"

	[config_set_provider_usage]
	other = "Set the active AI provider"

	[config_set_gemini_key_usage]
	other = "Store the Gemini API key"

	[config_set_default_type_usage]
	other = "Set the fallback commit type"

	[current_config]
	other = "Current configuration"

	[config_language_label]
	other = "language"

	[config_provider_label]
	other = "provider"

	[config_max_files_label]
	other = "max files"

	[config_max_size_label]
	other = "max file size (KB)"

	[config_default_type_label]
	other = "default commit type"

	[config_models_label]
	other = "models (default/fast/thinking)"

	[language_updated]
	other = "Language set to {{.Lang}}"

	[provider_updated]
	other = "Active provider set to {{.Provider}}"

	[gemini_key_updated]
	other = "Gemini API key stored"

	[default_type_updated]
	other = "Default commit type set to {{.Type}}"

	[invalid_language]
	other = "Language '{{.Lang}}' is not supported (valid: en, es)"

	[invalid_provider]
	other = "Provider '{{.Provider}}' is not supported (valid: openrouter, gemini)"

	[invalid_commit_type]
	other = "'{{.Type}}' is not a conventional commit type"

	[models_command_usage]
	other = "List available models or set the default"

	[models_set_flag_usage]
	other = "Save the given model as the default"

	[models_refresh_flag_usage]
	other = "Ignore the cache and refetch the catalog"

	[models_available]
	one = "{{.Count}} model available"
	other = "{{.Count}} models available"

	[models_preference_saved]
	other = "Default model set to {{.Model}}"

	[models_default_marker]
	other = "(default)"

	[loading_models]
	other = "Loading model catalog..."

	[app_usage]
	other = "Generate conventional commit messages from your staged changes"

	[verbose_flag_usage]
	other = "Enable info-level logging"

	[debug_flag_usage]
	other = "Enable debug logging with source locations"

	[help_command_usage]
	other = "Show help"

	[config_missing_value]
	other = "Missing value, e.g. 'commit-wizard config {{.Command}} {{.Example}}'"

	[completion.command_usage]
	other = "Generate shell completion scripts"

	[completion.bash_usage]
	other = "Print the bash completion script"

	[completion.zsh_usage]
	other = "Print the zsh completion script"

	[completion.install_usage]
	other = "Append the completion loader to your shell profile"

	[completion.already_installed]
	other = "Completion is already installed in {{.File}}"

	[completion.installed_success]
	other = "Completion installed in {{.File}}"

	[completion.restart_shell]
	other = "Restart your shell or run:"

	[completion.error_home_dir]
	other = "Could not resolve the home directory: {{.Error}}"

	[completion.error_unsupported_shell]
	other = "Shell '{{.Shell}}' is not supported, only bash and zsh are"

	[completion.error_open_config]
	other = "Could not open the shell profile: {{.Error}}"

	[completion.error_write_config]
	other = "Could not write the shell profile: {{.Error}}"

	[factory_already_registered]
	other = "The '{{.FactoryName}}' command is already registered"
	`
