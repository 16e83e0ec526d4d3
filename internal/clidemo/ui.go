package clidemo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#99AAB5")
	successColor   = lipgloss.Color("#57F287")
	errorColor     = lipgloss.Color("#ED4245")
	dimColor       = lipgloss.Color("#72767D")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().Foreground(dimColor)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))

	successStyle   = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	subtitleStyle  = lipgloss.NewStyle().Foreground(secondaryColor)
	hitHeaderStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
)

const (
	iconCheck = "✓"
	iconCross = "✗"
	iconInfo  = "●"
)

// UI handles the demo commands' formatted terminal output.
type UI struct{}

// NewUI returns a UI.
func NewUI() *UI { return &UI{} }

// Header prints a styled command header.
func (u *UI) Header(title string) {
	fmt.Println()
	fmt.Printf("%s %s\n", iconInfo, titleStyle.Render(title))
}

// Info prints a label/value pair.
func (u *UI) Info(label, value string) {
	fmt.Printf("  %s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}

// Blank prints an empty line.
func (u *UI) Blank() { fmt.Println() }

// Divider prints a horizontal rule.
func (u *UI) Divider() {
	fmt.Println(subtitleStyle.Render(strings.Repeat("─", 48)))
}

// Success prints a success message.
func (u *UI) Success(message string) {
	fmt.Printf("%s %s\n", successStyle.Render(iconCheck), message)
}

// Error prints an error message.
func (u *UI) Error(message string) {
	fmt.Printf("%s %s\n", errorStyle.Render(iconCross), message)
}

// Hit prints one search result row.
func (u *UI) Hit(rank int, id string, doc map[string]any) {
	fmt.Printf("  %s %s\n", hitHeaderStyle.Render(fmt.Sprintf("#%d", rank)), valueStyle.Render(id))
	for k, v := range doc {
		fmt.Printf("      %s %v\n", labelStyle.Render(k+":"), v)
	}
}
