// Package pdf implementa la generación del comprobante PDF de una requisición.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del comprobante  │  N° Requisición + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: Nombre + Centro de costo + Proyecto            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | Estado                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  JUSTIFICACIÓN + OBSERVACIONES                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID + Leyenda del almacén                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Requisiciones-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorApproved = &props.Color{Red: 22, Green: 120, Blue: 60}
	colorRejected = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa requisition.VoucherPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateVoucher genera el comprobante PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateVoucher(_ context.Context, req *entity.Requisition) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Requisición", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(solicitanteRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRow(req))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range notesRows(req) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(req))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de requisición + fecha (der).
func headerRow(req *entity.Requisition) core.Row {
	fecha := req.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE REQUISICIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Control de inventario y almacén", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(req.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 4,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// solicitanteRow: datos del solicitante y la imputación.
func solicitanteRow(req *entity.Requisition) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SOLICITANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(req.UserName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Centro de costo: %s   |   Proyecto: %s",
				nonEmpty(req.CostCenter, "—"),
				nonEmpty(req.Project, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del artículo solicitado.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Artículo solicitado", 7, align.Left),
		h("Estado", 3, align.Right),
	)
}

// itemRow: la línea del artículo con su estado coloreado.
func itemRow(req *entity.Requisition) core.Row {
	return row.New(8).Add(
		col.New(2).Add(text.New(
			fmt.Sprintf("%d", req.Quantity),
			props.Text{Size: 9, Align: align.Center, Top: 1},
		)),
		col.New(7).Add(text.New(
			req.ItemName,
			props.Text{Size: 9, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			statusLabel(req.Status),
			props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Top: 1, Right: 1, Color: statusColor(req.Status),
			},
		)),
	)
}

// notesRows: justificación del solicitante y observaciones de la resolución.
func notesRows(req *entity.Requisition) []core.Row {
	rows := []core.Row{
		row.New(12).Add(col.New(12).Add(
			text.New("JUSTIFICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(req.Justification, "—"), props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		)),
	}
	if req.Notes != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(req.Notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)))
	}
	return rows
}

// footerRow: QR con el ID completo para verificación + leyenda.
func footerRow(req *entity.Requisition) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(req.ID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Escanea el código QR para verificar\neste comprobante contra el sistema.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("COMPROBANTE DE REQUISICIÓN DE ALMACÉN", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 20,
				Left: 3, Color: colorPrimary,
			}),
			text.New("Conserve este documento como soporte de la entrega.", props.Text{
				Size: 6.5, Top: 28, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID toma el primer segmento del UUID como número legible del comprobante.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return strings.ToUpper(id)
}

func statusLabel(status string) string {
	switch status {
	case entity.StatusApproved:
		return "APROBADA"
	case entity.StatusRejected:
		return "RECHAZADA"
	default:
		return "PENDIENTE"
	}
}

func statusColor(status string) *props.Color {
	switch status {
	case entity.StatusApproved:
		return colorApproved
	case entity.StatusRejected:
		return colorRejected
	default:
		return colorGray
	}
}
