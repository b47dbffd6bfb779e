package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/hpowernl/nginx2json/pkg/models"
)

// ConsoleUI provides console UI functionality
type ConsoleUI struct {
	writer io.Writer
	colors bool
}

// NewConsoleUI creates a new console UI
func NewConsoleUI(enableColors bool) *ConsoleUI {
	return &ConsoleUI{
		writer: os.Stdout,
		colors: enableColors,
	}
}

// DisplaySummary displays the run summary
func (u *ConsoleUI) DisplaySummary(summary *models.Summary) {
	u.printHeader("📊 ACCESS LOG SUMMARY")

	u.printSection("Overall Statistics")
	u.printKeyValue("Total Lines", fmt.Sprintf("%d", summary.TotalLines))
	u.printKeyValue("Parsed Lines", fmt.Sprintf("%d", summary.ParsedLines))
	u.printKeyValue("Parse Errors", fmt.Sprintf("%d", summary.ParseErrors))
	u.printKeyValue("Unique IPs", fmt.Sprintf("%d", summary.UniqueIPs))
	u.printKeyValue("Total Bytes", fmt.Sprintf("%.2f MB", float64(summary.TotalBytes)/1024/1024))

	if summary.Bytes != nil {
		u.printSection("Response Size")
		u.printKeyValue("Mean", fmt.Sprintf("%.0f B", summary.Bytes.Mean))
		u.printKeyValue("Median", fmt.Sprintf("%.0f B", summary.Bytes.Median))
		u.printKeyValue("P95", fmt.Sprintf("%.0f B", summary.Bytes.P95))
		u.printKeyValue("Max", fmt.Sprintf("%d B", summary.Bytes.Max))
	}

	if len(summary.Browsers) > 0 {
		u.printSection("Top Browsers")
		u.printBrowsersTable(summary.Browsers[:min(10, len(summary.Browsers))])
	}

	if len(summary.OperatingSystems) > 0 {
		u.printSection("Top Operating Systems")
		u.printOSTable(summary.OperatingSystems[:min(10, len(summary.OperatingSystems))])
	}

	if len(summary.Devices) > 0 {
		u.printSection("Devices")
		u.printDevicesTable(summary.Devices)
	}

	if len(summary.Statuses) > 0 {
		u.printSection("HTTP Status Codes")
		u.printStatusesTable(summary.Statuses)
	}

	if len(summary.Methods) > 0 {
		u.printSection("HTTP Methods")
		u.printMethodsTable(summary.Methods)
	}
}

// Print helper methods
func (u *ConsoleUI) printHeader(title string) {
	if u.colors {
		color.New(color.FgCyan, color.Bold).Fprintf(u.writer, "\n%s\n", title)
		color.New(color.FgCyan).Fprintf(u.writer, "%s\n\n", strings.Repeat("═", len([]rune(title))))
	} else {
		fmt.Fprintf(u.writer, "\n%s\n%s\n\n", title, strings.Repeat("=", len([]rune(title))))
	}
}

func (u *ConsoleUI) printSection(title string) {
	if u.colors {
		color.New(color.FgYellow, color.Bold).Fprintf(u.writer, "\n%s\n", title)
		color.New(color.FgYellow).Fprintf(u.writer, "%s\n", strings.Repeat("─", len(title)))
	} else {
		fmt.Fprintf(u.writer, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	}
}

func (u *ConsoleUI) printKeyValue(key, value string) {
	if u.colors {
		color.New(color.FgWhite, color.Bold).Fprintf(u.writer, "%-25s", key+":")
		color.New(color.FgGreen).Fprintf(u.writer, "%s\n", value)
	} else {
		fmt.Fprintf(u.writer, "%-25s %s\n", key+":", value)
	}
}

func (u *ConsoleUI) printBrowsersTable(browsers []models.BrowserStat) {
	table := tablewriter.NewWriter(u.writer)
	table.SetHeader([]string{"Browser", "Requests"})

	for _, browser := range browsers {
		table.Append([]string{
			truncate(browser.Browser, 50),
			fmt.Sprintf("%d", browser.Count),
		})
	}

	table.Render()
}

func (u *ConsoleUI) printOSTable(oses []models.OSStat) {
	table := tablewriter.NewWriter(u.writer)
	table.SetHeader([]string{"Operating System", "Requests"})

	for _, os := range oses {
		table.Append([]string{
			truncate(os.OS, 50),
			fmt.Sprintf("%d", os.Count),
		})
	}

	table.Render()
}

func (u *ConsoleUI) printDevicesTable(devices []models.DeviceStat) {
	table := tablewriter.NewWriter(u.writer)
	table.SetHeader([]string{"Device", "Requests"})

	for _, device := range devices {
		table.Append([]string{
			device.Device,
			fmt.Sprintf("%d", device.Count),
		})
	}

	table.Render()
}

func (u *ConsoleUI) printStatusesTable(statuses []models.StatusStat) {
	table := tablewriter.NewWriter(u.writer)
	table.SetHeader([]string{"Status", "Class", "Requests"})

	for _, status := range statuses {
		table.Append([]string{
			fmt.Sprintf("%d", status.Status),
			status.Class,
			fmt.Sprintf("%d", status.Count),
		})
	}

	table.Render()
}

func (u *ConsoleUI) printMethodsTable(methods []models.MethodStat) {
	table := tablewriter.NewWriter(u.writer)
	table.SetHeader([]string{"Method", "Requests"})

	for _, method := range methods {
		table.Append([]string{
			method.Method,
			fmt.Sprintf("%d", method.Count),
		})
	}

	table.Render()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
