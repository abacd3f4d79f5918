package tui

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MKhiriev/go-ferrari-store/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

var pricePrinter = message.NewPrinter(language.BrazilianPortuguese)

// renderPage lays out a screen: title, divider, body, divider, help line.
func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
		b.WriteString("\n")
	} else {
		b.WriteString("-\n")
	}

	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("ctrl+c: quit"))

	return appStyle.Render(b.String())
}

// statusLines renders the notice and error shown under a page body.
func statusLines(notice, errMsg string) string {
	var b strings.Builder
	if notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(notice))
	}
	if errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + errMsg))
	}
	return b.String()
}

// formatPrice renders cents as Brazilian reais, e.g. "R$ 1.299,90".
func formatPrice(cents int64) string {
	return pricePrinter.Sprintf("R$ %.2f", float64(cents)/100)
}

func productTypeLabel(t models.ProductType) string {
	switch t {
	case models.ProductTypeCar:
		return "Road car"
	case models.ProductTypeFormula1:
		return "Formula 1"
	case models.ProductTypeHelmet:
		return "Helmet"
	case "":
		return "All"
	default:
		return string(t)
	}
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
