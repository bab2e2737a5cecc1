package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ReportPDFGenerator genera la versión PDF del reporte de ingresos diarios.
type ReportPDFGenerator interface {
	GenerateDailyIncomePDF(ctx context.Context, warehouseName string, report *dto.DailyIncomeResponse) ([]byte, error)
}

// StatisticsUseCase reportes de solo lectura sobre el libro de transacciones.
type StatisticsUseCase struct {
	repo          repository.StatisticsRepository
	warehouseRepo repository.WarehouseRepository
	pdfGen        ReportPDFGenerator
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(
	repo repository.StatisticsRepository,
	warehouseRepo repository.WarehouseRepository,
	pdfGen ReportPDFGenerator,
) *StatisticsUseCase {
	return &StatisticsUseCase{repo: repo, warehouseRepo: warehouseRepo, pdfGen: pdfGen}
}

const businessDateLayout = "2006-01-02"

// DailyIncome mercancía ingresada por producto (entradas completadas) de una
// bodega en un día.
func (uc *StatisticsUseCase) DailyIncome(ctx context.Context, warehouseID, date string) (*dto.DailyIncomeResponse, error) {
	day, err := uc.parseDay(date)
	if err != nil {
		return nil, err
	}
	if _, err := uc.resolveWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	rows, err := uc.repo.DailyIncome(ctx, warehouseID, day)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DailyIncomeItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.DailyIncomeItem{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			TotalQuantity: r.TotalQuantity,
			TotalAmount:   r.TotalAmount,
		})
	}
	return &dto.DailyIncomeResponse{WarehouseID: warehouseID, Date: date, Items: items}, nil
}

// DailyIncomePDF genera el reporte de ingresos diarios como PDF.
func (uc *StatisticsUseCase) DailyIncomePDF(ctx context.Context, warehouseID, date string) ([]byte, error) {
	warehouse, err := uc.resolveWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	report, err := uc.DailyIncome(ctx, warehouseID, date)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateDailyIncomePDF(ctx, warehouse.Name, report)
}

// DailyTopSales productos más vendidos de una bodega en un día, por cantidad
// descendente.
func (uc *StatisticsUseCase) DailyTopSales(ctx context.Context, warehouseID, date string) (*dto.DailyTopSalesResponse, error) {
	day, err := uc.parseDay(date)
	if err != nil {
		return nil, err
	}
	if _, err := uc.resolveWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	rows, err := uc.repo.DailyTopSales(ctx, warehouseID, day)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DailyTopSaleItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.DailyTopSaleItem{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			TotalQuantity: r.TotalQuantity,
		})
	}
	return &dto.DailyTopSalesResponse{WarehouseID: warehouseID, Date: date, Items: items}, nil
}

// ExpiredProducts productos de una bodega con líneas de entrada vencidas y
// stock todavía vivo.
func (uc *StatisticsUseCase) ExpiredProducts(ctx context.Context, warehouseID string) (*dto.ExpiredProductsResponse, error) {
	if _, err := uc.resolveWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	rows, err := uc.repo.ExpiredProducts(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpiredProductItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ExpiredProductItem{
			ProductID:       r.ProductID,
			ProductName:     r.ProductName,
			ExpiredQuantity: r.ExpiredQuantity,
			ExpireDate:      r.ExpireDate.Format(businessDateLayout),
		})
	}
	return &dto.ExpiredProductsResponse{WarehouseID: warehouseID, Items: items}, nil
}

func (uc *StatisticsUseCase) parseDay(date string) (time.Time, error) {
	day, err := time.Parse(businessDateLayout, date)
	if err != nil {
		return time.Time{}, domain.ErrValidation("fecha inválida: %s (formato esperado YYYY-MM-DD)", date)
	}
	return day, nil
}

func (uc *StatisticsUseCase) resolveWarehouse(ctx context.Context, warehouseID string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrWarehouseNotFound()
	}
	return toWarehouseResponse(warehouse), nil
}
