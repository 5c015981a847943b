package render

import (
	"fmt"
	"strconv"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// renderDOCX writes the document with unioffice. Layout mirrors the PDF
// backend: logo, centered header, numbered shaded section banners, a
// page break before experiences.
func renderDOCX(docModel Document, style Style, assetsDir, outputPath string) error {
	initLicense()

	doc := document.New()
	defer doc.Close()

	r := &docxRenderer{doc: doc, style: style, assetsDir: assetsDir}

	r.addLogo()
	r.addHeader(docModel)

	for _, section := range docModel.Sections {
		pageBreak := section.Kind == SectionExperiences
		r.addSectionBanner(section, pageBreak)
		switch section.Kind {
		case SectionExperiences:
			r.addExperiences(section.Experiences)
		case SectionSkills, SectionLanguages:
			r.addLabelRows(section.Rows)
		default:
			r.addYearRows(section.Rows)
		}
	}

	r.addFooter(docModel.Footer)

	return doc.SaveToFile(outputPath)
}

type docxRenderer struct {
	doc       *document.Document
	style     Style
	assetsDir string
}

// hexColor converts a #rrggbb string to a unioffice color. Bad input
// falls back to black, which is visible enough to flag a style bug.
func hexColor(hex string) color.Color {
	if len(hex) == 7 && hex[0] == '#' {
		hex = hex[1:]
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

func (r *docxRenderer) addLogo() {
	if path := r.style.FindLogo(r.assetsDir); path != "" {
		err := r.addLogoImage(path)
		if err == nil {
			return
		}
		fmt.Printf("Warning: could not load logo %s: %v\n", path, err)
	}

	para := r.doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	run := para.AddRun()
	run.AddText(r.style.LogoText)
	run.Properties().SetBold(true)
	run.Properties().SetSize(16 * measurement.Point)
	run.Properties().SetColor(hexColor(r.style.Primary))
}

// addLogoImage embeds the logo at 5cm wide, keeping the aspect ratio.
func (r *docxRenderer) addLogoImage(path string) error {
	img, err := common.ImageFromFile(path)
	if err != nil {
		return err
	}
	ref, err := r.doc.AddImage(img)
	if err != nil {
		return err
	}

	para := r.doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	inline, err := para.AddRun().AddDrawingInline(ref)
	if err != nil {
		return err
	}

	width := measurement.Distance(5 * measurement.Centimeter)
	height := width
	if img.Size.X > 0 {
		height = measurement.Distance(float64(width) * float64(img.Size.Y) / float64(img.Size.X))
	}
	inline.SetSize(width, height)
	return nil
}

func (r *docxRenderer) addHeader(docModel Document) {
	title := r.doc.AddParagraph()
	title.Properties().SetAlignment(wml.ST_JcCenter)
	run := title.AddRun()
	run.AddText(docModel.Title)
	run.Properties().SetBold(true)
	run.Properties().SetSize(28 * measurement.Point)
	run.Properties().SetColor(hexColor(r.style.Dark))

	subtitle := r.doc.AddParagraph()
	subtitle.Properties().SetAlignment(wml.ST_JcCenter)
	run = subtitle.AddRun()
	run.AddText(docModel.Subtitle)
	run.Properties().SetSize(12 * measurement.Point)
	run.Properties().SetColor(hexColor(r.style.TextGray))

	r.doc.AddParagraph()
}

// addSectionBanner draws the "N  TITLE" line on a full-width shaded
// table cell.
func (r *docxRenderer) addSectionBanner(section Section, pageBreak bool) {
	if pageBreak {
		br := r.doc.AddParagraph()
		br.Properties().SetPageBreakBefore(true)
		r.addLogo()
	}

	table := r.doc.AddTable()
	table.Properties().SetWidthPercent(100)
	cell := table.AddRow().AddCell()
	cell.Properties().SetShading(wml.ST_ShdSolid, color.Auto, hexColor(r.style.Primary))

	para := cell.AddParagraph()
	run := para.AddRun()
	run.AddText(fmt.Sprintf("%d  ", section.Number))
	run.Properties().SetBold(true)
	run.Properties().SetSize(16 * measurement.Point)
	run.Properties().SetColor(color.White)

	run = para.AddRun()
	run.AddText(section.Title)
	run.Properties().SetBold(true)
	run.Properties().SetSize(14 * measurement.Point)
	run.Properties().SetColor(color.White)

	r.doc.AddParagraph()
}

func (r *docxRenderer) addYearRows(rows []Row) {
	for _, row := range rows {
		p := r.doc.AddParagraph()

		yearColor := r.style.Primary
		if row.Accent {
			yearColor = r.style.CertAccent
		}

		if row.Lead != "" {
			run := p.AddRun()
			run.AddText(row.Lead + "    ")
			run.Properties().SetBold(true)
			run.Properties().SetSize(12 * measurement.Point)
			run.Properties().SetColor(hexColor(yearColor))
		}

		run := p.AddRun()
		run.AddText(row.Main)
		run.Properties().SetBold(true)
		run.Properties().SetSize(10 * measurement.Point)

		if row.Sub != "" {
			run.AddBreak()
			run = p.AddRun()
			run.AddText("        " + row.Sub)
			run.Properties().SetSize(9 * measurement.Point)
			run.Properties().SetColor(hexColor(r.style.TextGray))
		}
	}
}

func (r *docxRenderer) addLabelRows(rows []Row) {
	for _, row := range rows {
		p := r.doc.AddParagraph()

		run := p.AddRun()
		run.AddText(row.Lead + ":  ")
		run.Properties().SetBold(true)
		run.Properties().SetSize(10 * measurement.Point)

		run = p.AddRun()
		run.AddText(row.Main)
		run.Properties().SetSize(9.5 * measurement.Point)
		run.Properties().SetColor(hexColor(r.style.TextGray))
	}
}

func (r *docxRenderer) addExperiences(blocks []ExperienceBlock) {
	for _, block := range blocks {
		r.addExperienceBanner(block)

		if block.Role != "" {
			p := r.doc.AddParagraph()
			run := p.AddRun()
			run.AddText(block.Role)
			run.Properties().SetBold(true)
			run.Properties().SetSize(11 * measurement.Point)
		}
		if block.Location != "" {
			p := r.doc.AddParagraph()
			run := p.AddRun()
			run.AddText(block.Location)
			run.Properties().SetItalic(true)
			run.Properties().SetSize(9 * measurement.Point)
			run.Properties().SetColor(hexColor(r.style.TextGray))
		}

		r.addBulletGroup("Contexte du projet:", block.Projects, "• ")
		r.addBulletGroup("Réalisations:", block.Bullets, "✓ ")

		if block.Environment != "" {
			p := r.doc.AddParagraph()
			run := p.AddRun()
			run.AddText("Environnement technique: ")
			run.Properties().SetBold(true)
			run = p.AddRun()
			run.AddText(block.Environment)
			run.Properties().SetSize(9.5 * measurement.Point)
		}

		r.doc.AddParagraph()
	}
}

func (r *docxRenderer) addExperienceBanner(block ExperienceBlock) {
	table := r.doc.AddTable()
	table.Properties().SetWidthPercent(100)
	cell := table.AddRow().AddCell()
	cell.Properties().SetShading(wml.ST_ShdSolid, color.Auto, hexColor(r.style.Primary))

	para := cell.AddParagraph()
	run := para.AddRun()
	run.AddText(fmt.Sprintf("%s    %s", block.Company, block.Period))
	run.Properties().SetBold(true)
	run.Properties().SetSize(12 * measurement.Point)
	run.Properties().SetColor(color.White)
}

func (r *docxRenderer) addBulletGroup(label string, items []string, marker string) {
	if len(items) == 0 {
		return
	}

	p := r.doc.AddParagraph()
	run := p.AddRun()
	run.AddText(label)
	run.Properties().SetBold(true)

	for _, item := range items {
		bullet := r.doc.AddParagraph()
		bullet.Properties().SetStartIndent(0.5 * measurement.Inch)
		run := bullet.AddRun()
		run.AddText(marker + item)
		run.Properties().SetSize(9.5 * measurement.Point)
	}
}

func (r *docxRenderer) addFooter(text string) {
	para := r.doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	run := para.AddRun()
	run.AddText(text)
	run.Properties().SetSize(10 * measurement.Point)
	run.Properties().SetColor(hexColor(r.style.TextGray))
}
