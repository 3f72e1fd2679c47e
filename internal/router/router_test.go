package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foodshop/internal/controller"
	"foodshop/internal/middleware"
	"foodshop/internal/model"
	"foodshop/internal/repository"
	"foodshop/internal/service"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// ==================== 测试环境 ====================

type testApp struct {
	engine    *gin.Engine
	uploadDir string
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	return setupAppWithOptions(t, Options{})
}

// setupAppWithOptions opts 中的鉴权与上传目录由测试环境填充
func setupAppWithOptions(t *testing.T, opts Options) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	ctx := t.Context()

	store, err := repository.NewFileStore(t.TempDir(), log)
	require.NoError(t, err)
	require.NoError(t, repository.Bootstrap(ctx, store, log))

	accounts := repository.NewAccountRepository(store, log)
	products := repository.NewProductRepository(store, log)
	invoices := repository.NewInvoiceRepository(store, log)

	uploadDir := filepath.Join(t.TempDir(), "uploads")
	storage, err := service.NewStorageProvider(service.StorageConfig{Provider: "local", BasePath: uploadDir})
	require.NoError(t, err)

	sessions := service.NewSessionStore(service.DefaultSessionTTL)
	authSvc := service.NewAuthService(accounts, sessions, log)
	accountSvc := service.NewAccountService(accounts, sessions, log)
	uploadSvc := service.NewUploadService(storage, log)
	productSvc := service.NewProductService(products, uploadSvc, log)
	notifySvc := service.NewNotifyService(service.NewLogMailer(log), 2, log)
	t.Cleanup(notifySvc.Close)
	orderSvc := service.NewOrderService(products, invoices, notifySvc, log)

	_, err = accountSvc.EnsureDefaultAdmin(ctx, "admin", "admin123", "admin@foodshop.com")
	require.NoError(t, err)

	codec := middleware.NewSessionCodec(middleware.SessionCookieConfig{SecretKey: "test-secret"})

	r := gin.New()
	InitRoutes(r, Controllers{
		Auth:    controller.NewAuthController(authSvc, codec),
		Account: controller.NewAccountController(accountSvc),
		Product: controller.NewProductController(productSvc, uploadSvc),
		Order:   controller.NewOrderController(orderSvc),
	}, Options{
		AuthService:   authSvc,
		Codec:         codec,
		UploadDir:     uploadDir,
		MaxUploadBody: opts.MaxUploadBody,
	})

	return &testApp{engine: r, uploadDir: uploadDir}
}

func (a *testApp) do(t *testing.T, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) doJSON(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return a.do(t, req, cookie)
}

func (a *testApp) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	w := a.doJSON(t, http.MethodPost, "/api/login", map[string]string{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.DefaultCookieName {
			return c
		}
	}
	t.Fatal("login did not set session cookie")
	return nil
}

func (a *testApp) createSeller(t *testing.T, adminCookie *http.Cookie, username string) string {
	t.Helper()
	w := a.doJSON(t, http.MethodPost, "/api/admin/sellers", map[string]string{
		"username": username, "password": "pw-" + username, "email": username + "@example.com",
	}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Seller struct {
			ID string `json:"id"`
		} `json:"seller"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Seller.ID
}

func productForm(t *testing.T, fields map[string]string, fileField string, files int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for i := 0; i < files; i++ {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="pho-%d.png"`, fileField, i))
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(pngBytes)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func (a *testApp) createProduct(t *testing.T, sellerCookie *http.Cookie, name, price string) model.Product {
	t.Helper()
	body, contentType := productForm(t, map[string]string{
		"name": name, "price": price, "unit": "tô", "description": "ngon", "thumbnailIndex": "1",
	}, "images", 2)
	req := httptest.NewRequest(http.MethodPost, "/api/seller/products", body)
	req.Header.Set("Content-Type", contentType)

	w := a.do(t, req, sellerCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool          `json:"success"`
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Product
}

// ==================== 认证 ====================

func TestAuth_LoginCheckLogout(t *testing.T) {
	app := setupApp(t)

	w := app.doJSON(t, http.MethodGet, "/api/check-auth", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	cookie := app.login(t, "admin", "admin123")
	assert.True(t, cookie.HttpOnly)

	w = app.doJSON(t, http.MethodGet, "/api/check-auth", nil, cookie)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)

	w = app.doJSON(t, http.MethodPost, "/api/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.doJSON(t, http.MethodGet, "/api/check-auth", nil, cookie)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}

func TestAuth_LoginFailures(t *testing.T) {
	app := setupApp(t)

	w := app.doJSON(t, http.MethodPost, "/api/login", map[string]string{"username": "admin", "password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	w = app.doJSON(t, http.MethodPost, "/api/login", map[string]string{"username": "admin"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	w = app.do(t, req, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_TamperedCookie(t *testing.T) {
	app := setupApp(t)
	cookie := app.login(t, "admin", "admin123")

	forged := &http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"}
	w := app.doJSON(t, http.MethodGet, "/api/admin/sellers", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ==================== 权限 ====================

func TestRoleGuards(t *testing.T) {
	app := setupApp(t)
	admin := app.login(t, "admin", "admin123")
	app.createSeller(t, admin, "bakery")
	seller := app.login(t, "bakery", "pw-bakery")

	cases := []struct {
		name   string
		method string
		path   string
		cookie *http.Cookie
		want   int
	}{
		{"匿名访问管理员接口", http.MethodGet, "/api/admin/sellers", nil, http.StatusUnauthorized},
		{"卖家访问管理员接口", http.MethodGet, "/api/admin/sellers", seller, http.StatusForbidden},
		{"管理员访问卖家接口", http.MethodGet, "/api/seller/products", admin, http.StatusForbidden},
		{"匿名访问卖家接口", http.MethodGet, "/api/seller/invoices", nil, http.StatusUnauthorized},
		{"管理员读订单", http.MethodGet, "/api/admin/invoices", admin, http.StatusOK},
		{"卖家读自己的商品", http.MethodGet, "/api/seller/products", seller, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := app.doJSON(t, tc.method, tc.path, nil, tc.cookie)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

// ==================== 卖家管理 ====================

func TestSellerManagement(t *testing.T) {
	app := setupApp(t)
	admin := app.login(t, "admin", "admin123")

	id := app.createSeller(t, admin, "bakery")

	w := app.doJSON(t, http.MethodPost, "/api/admin/sellers", map[string]string{
		"username": "bakery", "password": "x", "email": "other@example.com",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.doJSON(t, http.MethodGet, "/api/admin/sellers", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"bakery"`)
	assert.NotContains(t, w.Body.String(), "password")

	seller := app.login(t, "bakery", "pw-bakery")

	w = app.doJSON(t, http.MethodDelete, "/api/admin/sellers/"+id, nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)

	// 删除后会话失效，且无法再次登录
	w = app.doJSON(t, http.MethodGet, "/api/seller/products", nil, seller)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = app.doJSON(t, http.MethodPost, "/api/login", map[string]string{"username": "bakery", "password": "pw-bakery"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ==================== 商品 ====================

func TestProductLifecycle(t *testing.T) {
	app := setupApp(t)
	admin := app.login(t, "admin", "admin123")
	app.createSeller(t, admin, "bakery")
	seller := app.login(t, "bakery", "pw-bakery")

	product := app.createProduct(t, seller, "Phở bò", "45000")
	require.Len(t, product.Images, 2)
	assert.Equal(t, product.Images[1], product.Thumbnail)
	assert.Equal(t, model.ProductStatusActive, product.Status)
	assert.True(t, strings.HasPrefix(product.Images[0], "/uploads/"))

	// 本地图片可直接访问
	w := app.doJSON(t, http.MethodGet, product.Images[0], nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.doJSON(t, http.MethodGet, "/api/products/"+product.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 管理员下架后公开接口不可见
	w = app.doJSON(t, http.MethodPatch, "/api/admin/products/"+product.ID, map[string]string{"status": "hidden"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.doJSON(t, http.MethodGet, "/api/products/"+product.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = app.doJSON(t, http.MethodGet, "/api/products", nil, nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = app.doJSON(t, http.MethodPatch, "/api/admin/products/"+product.ID, map[string]string{"status": "deleted"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 修改：只保留一张旧图，再加一张新图
	existing, _ := json.Marshal([]string{product.Images[0]})
	body, contentType := productForm(t, map[string]string{
		"name": "Phở gà", "price": "40000", "existingImages": string(existing), "thumbnailIndex": "1",
	}, "newImages", 1)
	req := httptest.NewRequest(http.MethodPut, "/api/seller/products/"+product.ID, body)
	req.Header.Set("Content-Type", contentType)
	w = app.do(t, req, seller)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated struct {
		Product model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Phở gà", updated.Product.Name)
	require.Len(t, updated.Product.Images, 2)
	assert.Equal(t, product.Images[0], updated.Product.Images[0])
	assert.Equal(t, updated.Product.Images[1], updated.Product.Thumbnail)
	assert.NotNil(t, updated.Product.UpdatedAt)

	// 被移除的旧图已删除
	w = app.doJSON(t, http.MethodGet, product.Images[1], nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.doJSON(t, http.MethodDelete, "/api/seller/products/"+product.ID, nil, seller)
	assert.Equal(t, http.StatusOK, w.Code)
	w = app.doJSON(t, http.MethodGet, "/api/admin/products", nil, admin)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestProductCreate_Validation(t *testing.T) {
	app := setupApp(t)
	admin := app.login(t, "admin", "admin123")
	app.createSeller(t, admin, "bakery")
	seller := app.login(t, "bakery", "pw-bakery")

	t.Run("没有图片", func(t *testing.T) {
		body, contentType := productForm(t, map[string]string{"name": "Bánh mì", "price": "20000"}, "images", 0)
		req := httptest.NewRequest(http.MethodPost, "/api/seller/products", body)
		req.Header.Set("Content-Type", contentType)
		w := app.do(t, req, seller)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("价格非法", func(t *testing.T) {
		body, contentType := productForm(t, map[string]string{"name": "Bánh mì", "price": "-1"}, "images", 1)
		req := httptest.NewRequest(http.MethodPost, "/api/seller/products", body)
		req.Header.Set("Content-Type", contentType)
		w := app.do(t, req, seller)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductUpdate_OtherSeller(t *testing.T) {
	app := setupApp(t)
	admin := app.login(t, "admin", "admin123")
	app.createSeller(t, admin, "bakery")
	app.createSeller(t, admin, "noodles")
	owner := app.login(t, "bakery", "pw-bakery")
	other := app.login(t, "noodles", "pw-noodles")

	product := app.createProduct(t, owner, "Bánh mì", "20000")

	w := app.doJSON(t, http.MethodDelete, "/api/seller/products/"+product.ID, nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.doJSON(t, http.MethodGet, "/api/seller/products", nil, other)
	assert.JSONEq(t, `[]`, w.Body.String())
}

// ==================== 订单 ====================

func TestPlaceOrder(t *testing.T) {
	app := setupApp(t)
	admin := app.login(t, "admin", "admin123")
	app.createSeller(t, admin, "bakery")
	seller := app.login(t, "bakery", "pw-bakery")
	product := app.createProduct(t, seller, "Phở bò", "25000")

	w := app.doJSON(t, http.MethodPost, "/api/orders", map[string]any{
		"productId":     product.ID,
		"customerName":  "Lan",
		"customerEmail": "lan@example.com",
		"quantity":      "3",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"total":75000`)

	// 小数数量截断为整数
	w = app.doJSON(t, http.MethodPost, "/api/orders", map[string]any{
		"productId":     product.ID,
		"customerName":  "Minh",
		"customerEmail": "minh@example.com",
		"quantity":      "2.5",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"quantity":2`)
	assert.Contains(t, w.Body.String(), `"total":50000`)

	w = app.doJSON(t, http.MethodGet, "/api/seller/invoices", nil, seller)
	assert.Contains(t, w.Body.String(), `"customerName":"Lan"`)

	w = app.doJSON(t, http.MethodGet, "/api/admin/invoices", nil, admin)
	assert.Contains(t, w.Body.String(), `"quantity":3`)
}

func TestPlaceOrder_Errors(t *testing.T) {
	app := setupApp(t)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"缺少字段", map[string]any{"productId": "p1", "customerName": "Lan"}, http.StatusBadRequest},
		{"数量非法", map[string]any{"productId": "p1", "customerName": "Lan", "customerEmail": "l@x.com", "quantity": -2}, http.StatusBadRequest},
		{"商品不存在", map[string]any{"productId": "missing", "customerName": "Lan", "customerEmail": "l@x.com", "quantity": 1}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := app.doJSON(t, http.MethodPost, "/api/orders", tc.body, nil)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"success":false`)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestProductCreate_BodyTooLarge(t *testing.T) {
	app := setupAppWithOptions(t, Options{MaxUploadBody: 256})
	admin := app.login(t, "admin", "admin123")
	app.createSeller(t, admin, "bakery")
	seller := app.login(t, "bakery", "pw-bakery")

	body, contentType := productForm(t, map[string]string{
		"name": "Phở bò", "price": "45000", "description": strings.Repeat("x", 1024),
	}, "images", 1)

	t.Run("声明长度", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/seller/products", bytes.NewReader(body.Bytes()))
		req.Header.Set("Content-Type", contentType)
		w := app.do(t, req, seller)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	})

	t.Run("未声明长度", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/seller/products", bytes.NewReader(body.Bytes()))
		req.Header.Set("Content-Type", contentType)
		req.ContentLength = -1
		w := app.do(t, req, seller)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	})

	w := app.doJSON(t, http.MethodGet, "/api/seller/products", nil, seller)
	assert.JSONEq(t, `[]`, w.Body.String())
}
