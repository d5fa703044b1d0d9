// Package handlers attaches all route handlers to the server router.
package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/iqlusioninc/crates-sub000/internal/api"
	"github.com/iqlusioninc/crates-sub000/internal/api/handlers/common"
	"github.com/iqlusioninc/crates-sub000/internal/api/handlers/keys"
	"github.com/iqlusioninc/crates-sub000/internal/api/handlers/wallets"
)

// AttachAllRoutes registers every route of the service and returns them.
func AttachAllRoutes(s *api.Server) []*echo.Route {
	return []*echo.Route{
		common.GetReadyRoute(s),
		common.GetHealthyRoute(s),

		keys.PostCreateKeyRoute(s),
		keys.GetKeysRoute(s),
		keys.GetKeyRoute(s),
		keys.DeleteKeyRoute(s),
		keys.PostDeriveKeyRoute(s),
		keys.PostInspectKeyRoute(s),

		wallets.GetWalletKeysRoute(s),
		wallets.GetWalletKeyRoute(s),
		wallets.DeleteWalletKeyRoute(s),
	}
}
