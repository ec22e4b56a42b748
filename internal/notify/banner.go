package notify

import (
	"fmt"
	"io"

	"github.com/metals-labs/metals-client/internal/branding"
	"github.com/metals-labs/metals-client/internal/serverversion"
)

// PrintBanner prints a non-interactive version of the notice to w.
func PrintBanner(w io.Writer, n serverversion.OutdatedNotice) {
	fmt.Fprintf(w, "\n%s\n", n.Message)
	fmt.Fprintf(w, "    Run `%s check` to upgrade to %s\n\n", branding.CLIName(), n.Update.LatestServerVersion)
}
