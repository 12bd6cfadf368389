package main

import (
	"github.com/ijma-tools/typeset/cmd"

	// Register format plugins
	_ "github.com/ijma-tools/typeset/format/docx"
	_ "github.com/ijma-tools/typeset/format/jsonfmt"
	_ "github.com/ijma-tools/typeset/format/submission"
	_ "github.com/ijma-tools/typeset/format/yamlfmt"
)

func main() {
	cmd.Execute()
}
