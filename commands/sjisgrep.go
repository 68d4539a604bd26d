package commands

type SJISGrepCommand struct {
	Search    SearchCommand    `command:"search" description:"Search files, directories or STDIN for an encoded string"`
	Encodings EncodingsCommand `command:"encodings" description:"List the supported encodings"`
	Update    UpdateCommand    `command:"update" description:"Update sjisgrep to the latest version"`
	Version   VersionCommand   `command:"version" description:"Displays sjisgrep version" alias:"V"`
}

var SJISGrep SJISGrepCommand
