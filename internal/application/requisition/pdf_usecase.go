package requisition

import (
	"context"

	"github.com/jhoicas/Requisiciones-api/internal/domain"
	"github.com/jhoicas/Requisiciones-api/internal/domain/repository"
)

// PDFUseCase genera el comprobante PDF de una requisición resuelta o pendiente.
type PDFUseCase struct {
	reqRepo   repository.RequisitionRepository
	generator VoucherPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(reqRepo repository.RequisitionRepository, generator VoucherPDFGenerator) *PDFUseCase {
	return &PDFUseCase{reqRepo: reqRepo, generator: generator}
}

// GenerateVoucher busca la requisición y devuelve el comprobante en bytes PDF.
func (uc *PDFUseCase) GenerateVoucher(ctx context.Context, requisitionID string) ([]byte, error) {
	req, err := uc.reqRepo.GetByID(requisitionID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateVoucher(ctx, req)
}
