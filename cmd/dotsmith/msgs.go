package main

// Short messages (one-liners)
const (
	MsgRootShort       = "A profile-driven dotfiles deployer"
	MsgDeployShort     = "Deploy dotfiles to this machine"
	MsgInstallShort    = "Install packages and shell tooling for this machine"
	MsgStatusShort     = "Show which targets conflict with the effective profile"
	MsgInfoShort       = "Show detected device information"
	MsgGenConfigShort  = "Generate the default settings file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Preview changes without touching the filesystem"
	MsgFlagForce    = "Replace conflicting targets after backing them up"
	MsgFlagBase     = "Base profile file to load (default: <detected-os>.yml)"
	MsgFlagProfile  = "Overlay profile(s) to merge on top of the base, in order"
	MsgFlagNoBackup = "Skip backing up conflicting targets before replacing them"
	MsgFlagWrite    = "Write the settings file to the dotfiles root instead of stdout"

	// Error messages
	MsgErrInitPaths     = "failed to initialize paths: %w"
	MsgErrLoadSettings  = "failed to load settings: %w"
	MsgErrMergeProfiles = "failed to build effective profile: %w"
	MsgErrBackup        = "failed to back up conflicting targets: %w"
	MsgErrDeployFailed  = "%d of %d configurations failed to deploy"
	MsgErrConflicts     = "%d conflicting targets; re-run deploy with --force to back them up and replace them"

	// Status messages
	MsgDryRunNotice    = "DRY RUN MODE - no changes were made"
	MsgFallbackWarning = "DOTFILES_ROOT not set, assuming %s\n"
)

// Long messages (multi-line descriptions)
const (
	MsgRootLong = `dotsmith reconciles your configuration files with a declarative profile:
it loads and merges OS and role profiles, detects conflicting targets,
backs them up, and replaces them with symlinks into your dotfiles store.`

	MsgDeployLong = `Deploy builds the effective profile for this machine, reports targets
that conflict with it, backs conflicting files up into a timestamped
session directory, and symlinks every configured target into the store.

The base profile defaults to the detected OS (linux.yml or macos.yml);
overlays from --profile or the settings file are merged on top in order.`

	MsgDeployExample = `  dotsmith deploy                     # detect OS, merge default overlay, deploy
  dotsmith deploy --force             # replace conflicting targets after backup
  dotsmith deploy -p personal -p work # stack overlays in order
  dotsmith deploy --base linux.yml --no-backup`

	MsgInstallLong = `Install reads the packages, plugins, and tool list from the effective
profile and installs them with the detected package manager. Zsh plugins
and the powerlevel10k theme are cloned from their upstream repositories.`

	MsgInstallExample = `  dotsmith install                    # install everything the profile lists
  dotsmith install -p personal        # include the personal overlay first`

	MsgStatusLong = `Status runs conflict detection against the effective profile and lists
every target that exists but is not already the expected symlink. Exits
non-zero when conflicts are found, so it can gate scripted deploys.`

	MsgInfoLong = `Info prints what dotsmith detected about this machine: operating
system, architecture, distribution, package manager, and hostname.`

	MsgGenConfigLong = `Output the default dotsmith.toml to stdout, or write it into the
dotfiles root with -w. Existing files are never overwritten.`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(dotsmith completion bash)

Zsh:
  $ dotsmith completion zsh > "${fpath[1]}/_dotsmith"

Fish:
  $ dotsmith completion fish | source

PowerShell:
  PS> dotsmith completion powershell | Out-String | Invoke-Expression
`
)
