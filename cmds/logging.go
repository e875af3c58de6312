package cmds

import (
	"flag"
	"os"
	"strings"
)

// ParseLoggingArgs feeds the glog startup arguments thru the flag
// package, which glog registers itself with.
func ParseLoggingArgs(s string) {
	args := make([]string, 1, 12)
	args[0] = os.Args[0]
	args = append(args, strings.Split(s, " ")...)
	orgArgs := os.Args
	os.Args = args
	flag.Parse()
	os.Args = orgArgs
}
