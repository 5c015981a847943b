package render

import (
	"fmt"

	"github.com/unidoc/unipdf/v3/creator"
	"github.com/unidoc/unipdf/v3/model"
)

// pdfFonts groups the standard fonts used across the document.
type pdfFonts struct {
	regular *model.PdfFont
	bold    *model.PdfFont
	oblique *model.PdfFont
}

func loadPDFFonts() (pdfFonts, error) {
	regular, err := model.NewStandard14Font(model.HelveticaName)
	if err != nil {
		return pdfFonts{}, fmt.Errorf("loading Helvetica: %w", err)
	}
	bold, err := model.NewStandard14Font(model.HelveticaBoldName)
	if err != nil {
		return pdfFonts{}, fmt.Errorf("loading Helvetica-Bold: %w", err)
	}
	oblique, err := model.NewStandard14Font(model.HelveticaObliqueName)
	if err != nil {
		return pdfFonts{}, fmt.Errorf("loading Helvetica-Oblique: %w", err)
	}
	return pdfFonts{regular: regular, bold: bold, oblique: oblique}, nil
}

// renderPDF draws the document with the unipdf creator. Experiences
// start on a fresh page with the logo repeated, mirroring the printed
// template.
func renderPDF(doc Document, style Style, assetsDir, outputPath string) error {
	initLicense()

	fonts, err := loadPDFFonts()
	if err != nil {
		return err
	}

	c := creator.New()
	c.SetPageMargins(50, 50, 42, 50)
	c.NewPage()

	r := &pdfRenderer{c: c, fonts: fonts, style: style, assetsDir: assetsDir}

	if err := r.drawLogo(); err != nil {
		return err
	}
	if err := r.drawHeader(doc); err != nil {
		return err
	}

	for _, section := range doc.Sections {
		if section.Kind == SectionExperiences {
			c.NewPage()
			if err := r.drawLogo(); err != nil {
				return err
			}
		}
		if err := r.drawSectionHeader(section); err != nil {
			return err
		}
		switch section.Kind {
		case SectionExperiences:
			err = r.drawExperiences(section.Experiences)
		case SectionSkills, SectionLanguages:
			err = r.drawLabelRows(section.Rows)
		default:
			err = r.drawYearRows(section.Rows)
		}
		if err != nil {
			return err
		}
	}

	if err := r.drawFooter(doc.Footer); err != nil {
		return err
	}

	return c.WriteToFile(outputPath)
}

type pdfRenderer struct {
	c         *creator.Creator
	fonts     pdfFonts
	style     Style
	assetsDir string
}

func (r *pdfRenderer) drawLogo() error {
	if path := r.style.FindLogo(r.assetsDir); path != "" {
		img, err := r.c.NewImageFromFile(path)
		if err == nil {
			img.ScaleToWidth(140)
			img.SetMargins(0, 0, 0, 12)
			return r.c.Draw(img)
		}
		fmt.Printf("Warning: could not load logo %s: %v\n", path, err)
	}

	// Text fallback so the document still carries the brand.
	p := r.c.NewStyledParagraph()
	chunk := p.Append(r.style.LogoText)
	chunk.Style.Font = r.fonts.bold
	chunk.Style.FontSize = 16
	chunk.Style.Color = creator.ColorRGBFromHex(r.style.Primary)
	p.SetMargins(0, 0, 0, 12)
	return r.c.Draw(p)
}

func (r *pdfRenderer) drawHeader(doc Document) error {
	title := r.c.NewStyledParagraph()
	chunk := title.Append(doc.Title)
	chunk.Style.Font = r.fonts.bold
	chunk.Style.FontSize = 28
	chunk.Style.Color = creator.ColorRGBFromHex(r.style.Dark)
	title.SetTextAlignment(creator.TextAlignmentCenter)
	if err := r.c.Draw(title); err != nil {
		return err
	}

	subtitle := r.c.NewStyledParagraph()
	chunk = subtitle.Append(doc.Subtitle)
	chunk.Style.Font = r.fonts.regular
	chunk.Style.FontSize = 12
	chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextGray)
	subtitle.SetTextAlignment(creator.TextAlignmentCenter)
	subtitle.SetMargins(0, 0, 4, 18)
	return r.c.Draw(subtitle)
}

func (r *pdfRenderer) drawSectionHeader(section Section) error {
	table := r.c.NewTable(2)
	if err := table.SetColumnWidths(0.07, 0.93); err != nil {
		return err
	}
	table.SetMargins(0, 0, 6, 8)

	numberCell := table.NewCell()
	numberCell.SetBackgroundColor(creator.ColorRGBFromHex(r.style.Dark))
	numberPara := r.c.NewStyledParagraph()
	chunk := numberPara.Append(fmt.Sprintf("%d", section.Number))
	chunk.Style.Font = r.fonts.bold
	chunk.Style.FontSize = 14
	chunk.Style.Color = creator.ColorRGBFromHex("#ffffff")
	numberPara.SetTextAlignment(creator.TextAlignmentCenter)
	if err := numberCell.SetContent(numberPara); err != nil {
		return err
	}

	titleCell := table.NewCell()
	titleCell.SetBackgroundColor(creator.ColorRGBFromHex(r.style.Primary))
	titlePara := r.c.NewStyledParagraph()
	chunk = titlePara.Append(section.Title)
	chunk.Style.Font = r.fonts.bold
	chunk.Style.FontSize = 13
	chunk.Style.Color = creator.ColorRGBFromHex("#ffffff")
	if err := titleCell.SetContent(titlePara); err != nil {
		return err
	}

	return r.c.Draw(table)
}

// drawYearRows renders the education section: year on the left, entry
// and institution on the right, boxed per row.
func (r *pdfRenderer) drawYearRows(rows []Row) error {
	for _, row := range rows {
		table := r.c.NewTable(2)
		if err := table.SetColumnWidths(0.16, 0.84); err != nil {
			return err
		}
		table.SetMargins(0, 0, 2, 4)

		yearColor := r.style.Primary
		if row.Accent {
			yearColor = r.style.CertAccent
		}

		yearCell := table.NewCell()
		yearCell.SetBorder(creator.CellBorderSideAll, creator.CellBorderStyleSingle, 1)
		yearCell.SetBorderColor(creator.ColorRGBFromHex(r.style.LightBG))
		yearPara := r.c.NewStyledParagraph()
		chunk := yearPara.Append(row.Lead)
		chunk.Style.Font = r.fonts.bold
		chunk.Style.FontSize = 12
		chunk.Style.Color = creator.ColorRGBFromHex(yearColor)
		if err := yearCell.SetContent(yearPara); err != nil {
			return err
		}

		mainCell := table.NewCell()
		mainCell.SetBorder(creator.CellBorderSideAll, creator.CellBorderStyleSingle, 1)
		mainCell.SetBorderColor(creator.ColorRGBFromHex(r.style.LightBG))
		mainPara := r.c.NewStyledParagraph()
		chunk = mainPara.Append(row.Main)
		chunk.Style.Font = r.fonts.bold
		chunk.Style.FontSize = 10
		chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextDark)
		if row.Sub != "" {
			chunk = mainPara.Append("\n" + row.Sub)
			chunk.Style.Font = r.fonts.regular
			chunk.Style.FontSize = 9
			chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextGray)
		}
		if err := mainCell.SetContent(mainPara); err != nil {
			return err
		}

		if err := r.c.Draw(table); err != nil {
			return err
		}
	}
	return nil
}

// drawLabelRows renders skills and languages: shaded label on the left,
// content on the right.
func (r *pdfRenderer) drawLabelRows(rows []Row) error {
	for _, row := range rows {
		table := r.c.NewTable(2)
		if err := table.SetColumnWidths(0.32, 0.68); err != nil {
			return err
		}
		table.SetMargins(0, 0, 2, 4)

		labelCell := table.NewCell()
		labelCell.SetBackgroundColor(creator.ColorRGBFromHex(r.style.LightBG))
		labelPara := r.c.NewStyledParagraph()
		chunk := labelPara.Append(row.Lead)
		chunk.Style.Font = r.fonts.bold
		chunk.Style.FontSize = 10
		chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextDark)
		if err := labelCell.SetContent(labelPara); err != nil {
			return err
		}

		valueCell := table.NewCell()
		valueCell.SetBorder(creator.CellBorderSideAll, creator.CellBorderStyleSingle, 1)
		valueCell.SetBorderColor(creator.ColorRGBFromHex(r.style.LightBG))
		valuePara := r.c.NewStyledParagraph()
		chunk = valuePara.Append(row.Main)
		chunk.Style.Font = r.fonts.regular
		chunk.Style.FontSize = 9.5
		chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextGray)
		if err := valueCell.SetContent(valuePara); err != nil {
			return err
		}

		if err := r.c.Draw(table); err != nil {
			return err
		}
	}
	return nil
}

func (r *pdfRenderer) drawExperiences(blocks []ExperienceBlock) error {
	for _, block := range blocks {
		if err := r.drawExperienceBanner(block); err != nil {
			return err
		}

		if block.Role != "" {
			p := r.c.NewStyledParagraph()
			chunk := p.Append(block.Role)
			chunk.Style.Font = r.fonts.bold
			chunk.Style.FontSize = 11
			chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextDark)
			p.SetMargins(0, 0, 4, 2)
			if err := r.c.Draw(p); err != nil {
				return err
			}
		}
		if block.Location != "" {
			p := r.c.NewStyledParagraph()
			chunk := p.Append(block.Location)
			chunk.Style.Font = r.fonts.oblique
			chunk.Style.FontSize = 9
			chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextGray)
			if err := r.c.Draw(p); err != nil {
				return err
			}
		}

		if err := r.drawBulletGroup("Projets:", block.Projects, ""); err != nil {
			return err
		}
		if err := r.drawBulletGroup("Réalisations:", block.Bullets, "✓ "); err != nil {
			return err
		}

		if block.Environment != "" {
			p := r.c.NewStyledParagraph()
			chunk := p.Append("Environnement technique: ")
			chunk.Style.Font = r.fonts.bold
			chunk.Style.FontSize = 9.5
			chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextDark)
			chunk = p.Append(block.Environment)
			chunk.Style.Font = r.fonts.regular
			chunk.Style.FontSize = 9.5
			chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextGray)
			p.SetMargins(0, 0, 2, 10)
			if err := r.c.Draw(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *pdfRenderer) drawExperienceBanner(block ExperienceBlock) error {
	table := r.c.NewTable(2)
	if err := table.SetColumnWidths(0.6, 0.4); err != nil {
		return err
	}
	table.SetMargins(0, 0, 8, 4)

	companyCell := table.NewCell()
	companyCell.SetBackgroundColor(creator.ColorRGBFromHex(r.style.Primary))
	companyPara := r.c.NewStyledParagraph()
	chunk := companyPara.Append(block.Company)
	chunk.Style.Font = r.fonts.bold
	chunk.Style.FontSize = 12
	chunk.Style.Color = creator.ColorRGBFromHex("#ffffff")
	if err := companyCell.SetContent(companyPara); err != nil {
		return err
	}

	periodCell := table.NewCell()
	periodCell.SetBackgroundColor(creator.ColorRGBFromHex(r.style.Primary))
	periodPara := r.c.NewStyledParagraph()
	chunk = periodPara.Append(block.Period)
	chunk.Style.Font = r.fonts.regular
	chunk.Style.FontSize = 11
	chunk.Style.Color = creator.ColorRGBFromHex("#ffffff")
	periodPara.SetTextAlignment(creator.TextAlignmentRight)
	if err := periodCell.SetContent(periodPara); err != nil {
		return err
	}

	return r.c.Draw(table)
}

func (r *pdfRenderer) drawBulletGroup(label string, items []string, marker string) error {
	if len(items) == 0 {
		return nil
	}

	labelPara := r.c.NewStyledParagraph()
	chunk := labelPara.Append(label)
	chunk.Style.Font = r.fonts.bold
	chunk.Style.FontSize = 10
	chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextDark)
	labelPara.SetMargins(0, 0, 4, 2)
	if err := r.c.Draw(labelPara); err != nil {
		return err
	}

	for _, item := range items {
		p := r.c.NewStyledParagraph()
		chunk = p.Append(marker + item)
		chunk.Style.Font = r.fonts.regular
		chunk.Style.FontSize = 9.5
		chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextGray)
		p.SetMargins(14, 0, 0, 3)
		if err := r.c.Draw(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *pdfRenderer) drawFooter(text string) error {
	p := r.c.NewStyledParagraph()
	chunk := p.Append(text)
	chunk.Style.Font = r.fonts.regular
	chunk.Style.FontSize = 10
	chunk.Style.Color = creator.ColorRGBFromHex(r.style.TextGray)
	p.SetTextAlignment(creator.TextAlignmentCenter)
	p.SetMargins(0, 0, 16, 0)
	return r.c.Draw(p)
}
