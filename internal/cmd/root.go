package cmd

import "github.com/alecthomas/kong"

type CLI struct {
	Color     string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON      bool   `help:"JSON output to stdout; disables colors."`
	Plain     bool   `help:"TSV output to stdout; disables colors."`
	Verbose   bool   `help:"Enable debug logging."`
	ProxyList string `name:"proxies" help:"Comma-separated proxy URLs (overrides JOBHUNT_PROXIES and proxies.txt)."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version   VersionCmd   `cmd:"" help:"Print version."`
	Config    ConfigCmd    `cmd:"" help:"Manage configuration."`
	Login     LoginCmd     `cmd:"" help:"Sign in."`
	Signup    SignupCmd    `cmd:"" help:"Create an account and sign in."`
	Logout    LogoutCmd    `cmd:"" help:"Sign out."`
	Whoami    WhoamiCmd    `cmd:"" help:"Show the signed-in account."`
	Jobs      JobsCmd      `cmd:"" help:"List certified jobs."`
	Show      ShowCmd      `cmd:"" help:"Show one job."`
	Saved     SavedCmd     `cmd:"" help:"Saved jobs."`
	Post      PostCmd      `cmd:"" help:"Post a job (company accounts)."`
	Dashboard DashboardCmd `cmd:"" help:"Summary of saved jobs or own postings."`
	Profile   ProfileCmd   `cmd:"" help:"Candidate profile."`
	Theme     ThemeCmd     `cmd:"" help:"Color theme."`
	Watch     WatchCmd     `cmd:"" help:"Poll the feed and print new jobs."`
	Seen      SeenCmd      `cmd:"" help:"Seen jobs utilities."`
	Proxies   ProxiesCmd   `cmd:"" name:"proxies" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
