package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tienda-api-test"
	testBaseURL   = "http://localhost:8080"
)

type testAPI struct {
	app   *fiber.App
	store *testutil.Store
	auth  *auth.AuthUseCase
}

// newTestAPI arma la API completa sobre repositorios en memoria, PDF con maroto
// y archivos en un directorio temporal.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := testutil.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, Issuer: testIssuer}).
		WithHashCost(bcrypt.MinCost)

	ticketFiles, err := storage.NewTicketStore(t.TempDir())
	require.NoError(t, err)
	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)
	urls := checkout.URLBuilder{BaseURL: testBaseURL}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		UserUC:     usecase.NewUserUseCase(store.Users()),
		ProductUC:  usecase.NewProductUseCase(store.Products(), images, nil),
		CartUC:     usecase.NewCartUseCase(store.Carts(), store.Products()),
		FavoriteUC: usecase.NewFavoriteUseCase(store.Favorites(), store.Products()),
		PurchaseUC: usecase.NewPurchaseUseCase(store.Purchases(), store.Tickets()),
		CheckoutUC: checkout.NewCheckoutUseCase(store, pdf.NewMarotoTicketGenerator("Tienda Test"), ticketFiles, urls),
		TicketUC:   checkout.NewTicketUseCase(store.Tickets(), ticketFiles, urls),
	})
	return &testAPI{app: app, store: store, auth: authUC}
}

// do lanza una petición JSON; token vacío = sin Authorization.
func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerAndLogin crea un cliente por la API y devuelve su token.
func (a *testAPI) registerAndLogin(t *testing.T, nombre, email string) string {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/users/register", dto.RegisterRequest{Nombre: nombre, Email: email, Password: "clave-segura"}, "")
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return a.login(t, email, "clave-segura")
}

func (a *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/users/login", dto.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

// adminToken crea un administrador por la vía de confianza y devuelve su token.
func (a *testAPI) adminToken(t *testing.T) string {
	t.Helper()
	_, err := a.auth.RegisterTrusted(context.Background(), dto.RegisterRequest{
		Nombre: "Admin", Email: "admin@tienda.test", Password: "admin-segura", Rol: entity.RoleAdmin,
	})
	require.NoError(t, err)
	return a.login(t, "admin@tienda.test", "admin-segura")
}
