package config

import (
	"flag"
	"os"
	"time"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-e string   environment name (selects the SSM parameter tree)
//	-g string   AWS region
//	-m string   media root directory with client album folders
//	-b string   S3 bucket name
//	-s string   SES sender email address
//	-t int      presigned link TTL, seconds
//	-p string   PayPal API base URL
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - The TTL flag is accepted as an integer in seconds and then converted
//     to a time.Duration value.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-e", "-g", "-m", "-b", "-s", "-t", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.Env, "e", config.Env, "environment name")
	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")
	fs.StringVar(&config.MediaRoot, "m", config.MediaRoot, "media root directory")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket name")
	fs.StringVar(&config.SenderEmail, "s", config.SenderEmail, "SES sender email")
	fs.StringVar(&config.PayPalBaseURL, "p", config.PayPalBaseURL, "PayPal API base URL")

	linkTTL := fs.Int("t", int(config.LinkTTL.Seconds()), "link_ttl (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.LinkTTL = time.Duration(*linkTTL) * time.Second
}
