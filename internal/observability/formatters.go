// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/benefind/internal/eligibility"
	"github.com/jonathan/benefind/internal/resources"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintVerdict outputs a human-readable summary of an eligibility verdict.
func (p *Printer) PrintVerdict(verdict *eligibility.Verdict, profile eligibility.HouseholdProfile) {
	if verdict == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("State:      %s\n", profile.State))
	sb.WriteString(fmt.Sprintf("Household:  %d\n", profile.HouseholdSize))
	sb.WriteString(fmt.Sprintf("Income:     $%.2f/month\n", profile.MonthlyIncome))
	sb.WriteString("\n")

	if verdict.Eligible {
		sb.WriteString("Result:     ✅ LIKELY ELIGIBLE\n")
	} else {
		sb.WriteString("Result:     ❌ NOT ELIGIBLE\n")
	}
	sb.WriteString("\n")

	if verdict.GrossTest.Required {
		sb.WriteString(fmt.Sprintf("Gross test: %s ($%.2f vs limit $%.2f)\n",
			passMark(verdict.GrossTest.Passed), verdict.GrossTest.Actual, verdict.GrossTest.Limit))
	} else {
		sb.WriteString("Gross test: waived (elderly or disabled member)\n")
	}
	sb.WriteString(fmt.Sprintf("Net test:   %s ($%.2f vs limit $%.2f)\n",
		passMark(verdict.NetTest.Passed), verdict.NetTest.Actual, verdict.NetTest.Limit))

	d := verdict.Deductions
	total := d.Standard + d.DependentCare + d.Medical + d.Shelter
	if total > 0 {
		sb.WriteString("\nDeductions:\n")
		if d.Standard > 0 {
			sb.WriteString(fmt.Sprintf("  Standard:        $%.2f\n", d.Standard))
		}
		if d.DependentCare > 0 {
			sb.WriteString(fmt.Sprintf("  Dependent care:  $%.2f\n", d.DependentCare))
		}
		if d.Medical > 0 {
			sb.WriteString(fmt.Sprintf("  Medical:         $%.2f\n", d.Medical))
		}
		if d.Shelter > 0 {
			sb.WriteString(fmt.Sprintf("  Excess shelter:  $%.2f\n", d.Shelter))
		}
	}

	p.printBox("ELIGIBILITY VERDICT", strings.TrimSuffix(sb.String(), "\n"))

	if verdict.Benefit != nil {
		p.printBenefit(verdict.Benefit)
	}
}

// printBenefit outputs the quick strategy's benefit estimate.
func (p *Printer) printBenefit(b *eligibility.BenefitEstimate) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Region:             %s\n", b.Region))
	sb.WriteString(fmt.Sprintf("Poverty line:       $%.2f/year\n", b.YearlyPovertyLine))
	sb.WriteString(fmt.Sprintf("Max allotment:      $%.2f/month\n", b.MaxMonthlyAllotment))
	sb.WriteString(fmt.Sprintf("Estimated benefit:  $%.2f/month", b.EstimatedMonthlyBenefit))

	p.printBox("BENEFIT ESTIMATE", sb.String())
}

// PrintResources outputs a summary of nearby pantries and food drives.
func (p *Printer) PrintResources(results *resources.Results) {
	if results == nil {
		return
	}

	var sb strings.Builder

	if len(results.Pantries) > 0 {
		sb.WriteString(fmt.Sprintf("Found %d pantries:\n\n", len(results.Pantries)))
		count := min(len(results.Pantries), maxItemsToShow)
		for i := 0; i < count; i++ {
			pantry := results.Pantries[i]
			sb.WriteString(fmt.Sprintf("• %s", pantry.Name))
			if pantry.DistanceMiles != nil {
				sb.WriteString(fmt.Sprintf(" (%.1f mi)", *pantry.DistanceMiles))
			}
			sb.WriteString("\n")
			if pantry.Address != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", pantry.Address))
			}
		}
		if len(results.Pantries) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(results.Pantries)-maxItemsToShow))
		}
	}

	if len(results.FoodDrives) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Food drives:\n\n")
		count := min(len(results.FoodDrives), 3)
		for i := 0; i < count; i++ {
			drive := results.FoodDrives[i]
			sb.WriteString(fmt.Sprintf("• %s\n", drive.Name))
			if drive.Date != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", drive.Date))
			}
		}
		if len(results.FoodDrives) > 3 {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(results.FoodDrives)-3))
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("No resources found.")
	}

	p.printBox("FOOD RESOURCES", strings.TrimSuffix(sb.String(), "\n"))
}

func passMark(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}
