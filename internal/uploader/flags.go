package uploader

import (
	"flag"
	"os"
	"strings"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the delivery API server
//	-m string   media root directory
//	-e string   environment name
//	-g string   AWS region
//	-b string   S3 bucket name
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with command arguments.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-m", "-e", "-g", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "delivery API base URL")
	fs.StringVar(&cfg.MediaRoot, "m", cfg.MediaRoot, "media root directory")
	fs.StringVar(&cfg.Env, "e", cfg.Env, "environment name")
	fs.StringVar(&cfg.AWSRegion, "g", cfg.AWSRegion, "AWS region")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket name")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

// PositionalArgs strips the uploader's flags (and their values) from args
// and returns the remaining command words, e.g. ["upload", "acme", "summer"].
func PositionalArgs(args []string) []string {
	takesValue := map[string]bool{
		"-u": true, "-m": true, "-e": true, "-g": true, "-b": true,
		"-c": true, "-config": true,
	}

	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			if !strings.Contains(arg, "=") && takesValue[arg] && i+1 < len(args) {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
