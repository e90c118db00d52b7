package main

// Message constants
const (
	MsgBackupShort = "Back up dotfiles, configs, packages and fonts"
	MsgBackupLong  = `The 'backup' command copies the configured dotfiles, application
configs, installed-package lists, and fonts into the backup tree.

With no argument, all four sections are backed up. Pass a section name
to back up just that section.`

	MsgBackupExample = `  # Back up everything
  dotsnap backup

  # Back up just dotfiles
  dotsnap backup dotfiles

  # Preview without copying
  dotsnap backup --dry-run`

	MsgReinstallShort = "Restore dotfiles, configs, packages and fonts from a backup"
	MsgReinstallLong  = `The 'reinstall' command restores a backup tree: dotfiles and configs
are copied back to their installed locations, fonts back to the font
directory, and recorded package lists are replayed through their
package managers.

With no argument, all four sections are restored. Pass a section name
to restore just that section.`

	MsgReinstallExample = `  # Restore everything
  dotsnap reinstall

  # Replay package lists only
  dotsnap reinstall packages

  # Preview without copying or installing
  dotsnap reinstall --dry-run`

	MsgGenConfigShort = "Print or write the default configuration"
	MsgGenConfigLong  = `Outputs the default dotsnap configuration. With --write, the config
is written to the user config path instead; an existing file is never
overwritten.`

	MsgGenConfigExample = `  # Inspect the defaults
  dotsnap genconfig

  # Create your config file
  dotsnap genconfig --write`

	MsgShowShort = "Show the resolved configuration"
	MsgShowLong  = `Prints the config file path, the resolved backup root, and the
effective configuration after all layers are applied.`
)
