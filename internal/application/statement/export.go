package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proforma/backend/internal/domain/property"
	"github.com/proforma/backend/internal/domain/statement"
)

// ExportRow is one flattened line of the printable statement
type ExportRow struct {
	Label      string
	Depth      int
	IsSubtotal bool
	Amounts    statement.Amounts
}

// ExportSection is one section of the printable statement
type ExportSection struct {
	Title string
	Rows  []ExportRow
}

// ExportDocument is the view model handed to the PDF renderer
type ExportDocument struct {
	PropertyName       string
	PropertyAddress    string
	GeneratedAt        time.Time
	Sections           []ExportSection
	NetOperatingIncome statement.Amounts
	CashFlow           statement.Amounts
}

// StatementRenderer turns the export view model into PDF bytes.
// Implementations live in infrastructure.
type StatementRenderer interface {
	RenderPDF(ctx context.Context, doc *ExportDocument) ([]byte, error)
}

// ExportService produces the downloadable PDF rendition of a statement
type ExportService struct {
	statementRepo statement.Repository
	propertyRepo  property.Repository
	renderer      StatementRenderer
	logger        *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(statementRepo statement.Repository, propertyRepo property.Repository, renderer StatementRenderer, logger *zap.Logger) *ExportService {
	return &ExportService{
		statementRepo: statementRepo,
		propertyRepo:  propertyRepo,
		renderer:      renderer,
		logger:        logger,
	}
}

// ExportPDF renders the property's statement and returns the PDF bytes
// with a suggested file name
func (s *ExportService) ExportPDF(ctx context.Context, tenantID, propertyID uuid.UUID) ([]byte, string, error) {
	p, err := s.propertyRepo.GetByID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, "", err
	}
	st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, "", err
	}

	doc := &ExportDocument{
		PropertyName:       p.Name,
		PropertyAddress:    joinAddress(p),
		GeneratedAt:        time.Now(),
		NetOperatingIncome: st.NetOperatingIncome(),
		CashFlow:           st.CashFlow(),
	}
	for _, pair := range []struct {
		title string
		sec   *statement.Section
	}{
		{"Income", st.Income},
		{"Operating Expenses", st.OperatingExpenses},
		{"Capital Expenses", st.CapitalExpenses},
	} {
		doc.Sections = append(doc.Sections, ExportSection{
			Title: pair.title,
			Rows:  flattenSection(pair.sec),
		})
	}

	pdf, err := s.renderer.RenderPDF(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("%s-statement-%s.pdf", sanitizeFileName(p.Name), time.Now().Format("2006-01-02"))
	s.logger.Info("statement exported",
		zap.String("property_id", propertyID.String()),
		zap.Int("bytes", len(pdf)))
	return pdf, name, nil
}

func flattenSection(sec *statement.Section) []ExportRow {
	var rows []ExportRow
	var walk func(n *statement.Node, depth int)
	walk = func(n *statement.Node, depth int) {
		rows = append(rows, ExportRow{
			Label:      n.Label,
			Depth:      depth,
			IsSubtotal: n.IsSubtotal,
			Amounts:    n.Amounts,
		})
		for _, id := range n.ChildOrder {
			if c := n.Children[id]; c != nil {
				walk(c, depth+1)
			}
		}
	}
	for _, id := range sec.Order {
		if n := sec.Items[id]; n != nil {
			walk(n, 0)
		}
	}
	return rows
}

func joinAddress(p *property.Property) string {
	parts := []string{}
	for _, part := range []string{p.AddressLine, p.City, p.State, p.PostalCode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	out := ""
	for i, part := range parts {
		if i > 0 {
			out += ", "
		}
		out += part
	}
	return out
}

func sanitizeFileName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "property"
	}
	return string(out)
}
