package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/bnema/subs-cli/internal/domain"
)

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
)

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	_, _ = warningColor.Fprintf(w, "! "+format+"\n", args...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummaryWarnings(w io.Writer, summary domain.Summary) {
	for _, warning := range summary.Warnings {
		printWarning(w, "%s", warning.Error())
	}
}

func parseSubscriptionID(raw string) (domain.SubscriptionID, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: subscription id must be a positive number, got %q", domain.ErrInvalidInput, raw)
	}
	return domain.SubscriptionID(id), nil
}
