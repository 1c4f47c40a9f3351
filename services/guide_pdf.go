package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateFieldGuide creates a printable PDF companion for a template using
// maroto/v2: the run parameters, the requirement-level legend, and one
// section per content sheet listing the retained fields. It returns the raw
// PDF bytes or an error.
func GenerateFieldGuide(cl *Checklist, cfg RunConfig) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mcfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(mcfg)

	addGuideHeader(m, cl, cfg)
	addGuideLegend(m)
	for _, name := range append([]string{SheetProject, SheetSample}, AuxiliarySheets(cfg.AssayType)...) {
		addGuideSheetSection(m, name, cl.FilterSheet(name, cfg))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate field guide PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addGuideHeader adds the title row and the run parameters block.
func addGuideHeader(m core.Maroto, cl *Checklist, cfg RunConfig) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New("eDNA TEMPLATE FIELD GUIDE", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(cfg.ProjectID, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("FAIRe checklist %s | %s", cl.Version, cl.FileName), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	params := []struct{ label, value string }{
		{"Assay type", cfg.AssayType},
		{"Assay names", strings.Join(cfg.AssayNames, " | ")},
		{"Requirement levels", strings.Join(cfg.RequirementLevels, " | ")},
		{"Sample types", strings.Join(cfg.SampleTypes, " | ")},
	}
	for _, p := range params {
		m.AddRows(
			row.New(6).Add(
				col.New(3).Add(text.New(p.label, labelStyle)),
				col.New(9).Add(text.New(p.value, valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addGuideLegend adds the requirement-level legend with the template colors.
func addGuideLegend(m core.Maroto) {
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("REQUIREMENT LEVELS", props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &props.Color{Red: 100, Green: 100, Blue: 100},
			})),
		),
	)

	for _, code := range RequirementLevelCodes {
		m.AddRows(
			row.New(6).Add(
				col.New(1).Add(text.New(code, props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Center,
				})).WithStyle(&props.Cell{BackgroundColor: levelColor(code)}),
				col.New(11).Add(text.New(requirementDisplay[code], props.Text{
					Size:  8,
					Align: align.Left,
				})),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addGuideSheetSection adds one sheet's field table: term, level, section and
// description columns, with alternating body backgrounds.
func addGuideSheetSection(m core.Maroto, sheet string, fields []SheetField) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(text.New(strings.ToUpper(sheet), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
		),
	)

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(7).Add(
			col.New(3).Add(text.New("Term", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Level", headerText)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Section", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Description", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, fld := range fields {
		bodyText := props.Text{Size: 7, Align: align.Left}

		desc := ""
		if fld.Entry != nil {
			desc = truncateText(fld.Entry.Description, 180)
		}

		colTerm := col.New(3).Add(text.New(fld.Term, bodyText))
		colSection := col.New(3).Add(text.New(fld.Section, bodyText))
		colDesc := col.New(5).Add(text.New(desc, bodyText))
		if i%2 == 1 {
			cellStyle := &props.Cell{BackgroundColor: altBg}
			colTerm = colTerm.WithStyle(cellStyle)
			colSection = colSection.WithStyle(cellStyle)
			colDesc = colDesc.WithStyle(cellStyle)
		}

		colLevel := col.New(1).Add(text.New(fld.LevelCode, props.Text{Size: 7, Align: align.Center}))
		if c := levelColor(fld.LevelCode); c != nil {
			colLevel = colLevel.WithStyle(&props.Cell{BackgroundColor: c})
		} else if i%2 == 1 {
			colLevel = colLevel.WithStyle(&props.Cell{BackgroundColor: altBg})
		}

		m.AddRows(row.New(7).Add(colTerm, colLevel, colSection, colDesc))
	}

	m.AddRows(row.New(3))
}

// levelColor maps a requirement level code to its template fill color.
func levelColor(code string) *props.Color {
	switch code {
	case "M":
		return &props.Color{Red: 226, Green: 107, Blue: 10}
	case "HR":
		return &props.Color{Red: 255, Green: 204, Blue: 0}
	case "R":
		return &props.Color{Red: 255, Green: 255, Blue: 153}
	case "O":
		return &props.Color{Red: 204, Green: 255, Blue: 153}
	}
	return nil
}

// truncateText shortens long description text for the table body.
func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}
