package notify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/metals-labs/metals-client/internal/serverversion"
)

// Choice is the answer to an outdated notice.
type Choice int

const (
	ChoiceUpgrade Choice = iota + 1
	ChoiceOpenSettings
	ChoiceDismiss
)

func (c Choice) String() string {
	switch c {
	case ChoiceUpgrade:
		return "upgrade"
	case ChoiceOpenSettings:
		return "open-settings"
	case ChoiceDismiss:
		return "dismiss"
	default:
		return fmt.Sprintf("Choice(%d)", int(c))
	}
}

// Prompt shows the notice with a numbered menu on w and reads the answer from
// r. Choosing upgrade runs the notice's Upgrade before returning. An empty
// answer or end of input dismisses the notice.
func Prompt(r io.Reader, w io.Writer, n serverversion.OutdatedNotice) (Choice, error) {
	reader := bufio.NewReader(r)

	choices := []Choice{ChoiceUpgrade, ChoiceOpenSettings, ChoiceDismiss}
	labels := []string{n.UpgradeChoice, n.OpenSettingsChoice, n.DismissChoice}

	idx, err := selectFromList(reader, w, n.Message, labels, len(labels)-1)
	if err != nil {
		return 0, err
	}

	choice := choices[idx]
	if choice == ChoiceUpgrade && n.Upgrade != nil {
		n.Upgrade()
	}
	return choice, nil
}

// selectFromList prints a numbered menu and returns the selected index.
// A blank line or EOF selects def.
func selectFromList(reader *bufio.Reader, w io.Writer, prompt string, items []string, def int) (int, error) {
	fmt.Fprintf(w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}
	fmt.Fprintf(w, "Enter number [1-%d] (default %d): ", len(items), def+1)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("reading selection: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(items) {
		return 0, fmt.Errorf("invalid selection %q: choose 1-%d", line, len(items))
	}
	return num - 1, nil
}
