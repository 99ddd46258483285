// Package folio contiene los casos de uso de folios (cuentas del huésped), pagos,
// cargos, división de folios, anticipos y el PDF del folio.
package folio

import (
	"context"

	"github.com/jhoicas/hotel-pms-api/internal/domain/rbac"
	"github.com/jhoicas/hotel-pms-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios de folios y anticipos dentro de una transacción.
type TxRunner interface {
	RunFolio(ctx context.Context, fn func(bills repository.BillRepository, advances repository.AdvanceRepository) error) error
}

// PermissionChecker verificación secundaria de permisos dentro del caso de uso.
type PermissionChecker interface {
	HasModulePermission(ctx context.Context, module rbac.Module, level rbac.PermissionLevel) bool
	HasAnyRole(ctx context.Context, codes ...string) bool
}

// PDFGenerator genera la representación PDF del folio.
type PDFGenerator interface {
	GenerateFolio(doc *Document) ([]byte, error)
}
