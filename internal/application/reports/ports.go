package reports

import (
	"time"

	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

// Snapshot estado completo del sistema para exportar o respaldar.
type Snapshot struct {
	Products  []*repository.InventoryReportRow
	Movements []*repository.MovementListItem
	Suppliers []*entity.Supplier
	Vendors   []*entity.Vendor
}

// Exporter genera un libro XLSX a partir de un snapshot.
type Exporter interface {
	InventoryWorkbook(s Snapshot) ([]byte, error)
}

// PDFGenerator genera el reporte de inventario en PDF.
type PDFGenerator interface {
	InventoryPDF(s Snapshot) ([]byte, error)
}

// BackupFile un respaldo existente en disco.
type BackupFile struct {
	Filename string
	Size     int64
	Created  time.Time
}

// BackupStore persiste y lista respaldos en el directorio configurado.
type BackupStore interface {
	Save(filename string, data []byte) (path string, err error)
	List() ([]BackupFile, error)
}
