// Package export renders finished adventures into shareable artifacts.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/locale"
)

const (
	pdfMargin    = 15.0
	pdfLineH     = 6.0
	pdfTitleSize = 22.0
	pdfHeadSize  = 14.0
	pdfBodySize  = 11.0
)

// PDF writes an adventure artbook for the session: title page, world
// summary, main quest, character roster and the full turn log.
//
// Core PDF fonts only cover latin text. For Chinese worlds a TTF with
// CJK coverage must be supplied via PDF_FONT_PATH; without it the
// export falls back to a latin translator and CJK text will degrade.
func PDF(w io.Writer, sess *adventure.Session) error {
	if sess == nil || sess.World == nil {
		return fmt.Errorf("session has no world")
	}
	wld := sess.World
	lang := locale.Normalize(wld.Lang)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := os.Getenv("PDF_FONT_PATH"); fontPath != "" {
		if _, err := os.Stat(fontPath); err == nil {
			family = "custom"
			pdf.AddUTF8Font(family, "", fontPath)
			pdf.AddUTF8Font(family, "B", fontPath)
			tr = func(s string) string { return s }
		}
	}

	title := wld.Title
	if title == "" {
		title = wld.Name
	}

	// Title page
	pdf.AddPage()
	pdf.SetFont(family, "B", pdfTitleSize)
	pdf.Ln(40)
	pdf.MultiCell(0, 12, tr(title), "", "C", false)

	section := func(label string) {
		pdf.Ln(6)
		pdf.SetFont(family, "B", pdfHeadSize)
		pdf.MultiCell(0, 8, tr(locale.PDFLabel(label, lang)), "", "L", false)
		pdf.SetFont(family, "", pdfBodySize)
	}

	if wld.Summary != "" {
		section("summary")
		pdf.MultiCell(0, pdfLineH, tr(wld.Summary), "", "L", false)
	}
	if wld.MainQuest != "" {
		section("quest")
		pdf.MultiCell(0, pdfLineH, tr(wld.MainQuest), "", "L", false)
	}

	if len(wld.Characters) > 0 {
		section("roster")
		for _, c := range wld.Characters {
			pdf.SetFont(family, "B", pdfBodySize)
			pdf.MultiCell(0, pdfLineH, tr(c.Name+" - "+c.Role), "", "L", false)
			pdf.SetFont(family, "", pdfBodySize)
			if c.Description != "" {
				pdf.MultiCell(0, pdfLineH, tr(c.Description), "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	// Turn log on its own page
	if len(sess.History) > 0 {
		pdf.AddPage()
		pdf.SetFont(family, "B", pdfHeadSize)
		pdf.MultiCell(0, 8, tr(locale.PDFLabel("log", lang)), "", "L", false)

		playerLabel := locale.PDFLabel("player", lang)
		dmLabel := locale.PDFLabel("dm", lang)
		roundLabel := locale.PDFLabel("round", lang)

		for i, turn := range sess.History {
			pdf.Ln(3)
			pdf.SetFont(family, "B", pdfBodySize)
			pdf.MultiCell(0, pdfLineH, tr(fmt.Sprintf("%s %d", roundLabel, i)), "", "L", false)
			pdf.SetFont(family, "", pdfBodySize)
			if turn.Player != locale.StartSentinel && turn.Player != locale.FinaleSentinel {
				pdf.MultiCell(0, pdfLineH, tr(playerLabel+": "+turn.Player), "", "L", false)
			}
			pdf.MultiCell(0, pdfLineH, tr(dmLabel+": "+turn.DM), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
