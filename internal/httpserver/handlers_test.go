package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/transport"
)

func TestCategories_PublicReadAdminWrite(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodGet, "/categories", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []transport.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = env.doJSONRequest(http.MethodPost, "/categories", map[string]string{"name": "Cama"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	client, _ := env.login("maria@example.com")
	rec = env.doJSONRequest(http.MethodPost, "/categories", map[string]string{"name": "Cama"}, client)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin, _ := env.login("ana@example.com")
	rec = env.doJSONRequest(http.MethodPost, "/categories", map[string]string{"name": "Cama"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created transport.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, fmt.Sprintf("/categories/%d", created.ID), rec.Header().Get(echo.HeaderLocation))

	rec = env.doJSONRequest(http.MethodPut, fmt.Sprintf("/categories/%d", created.ID), map[string]string{"name": "Cama e banho"}, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSONRequest(http.MethodDelete, fmt.Sprintf("/categories/%d", env.F.Category.ID), nil, admin)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 409, decodeError(t, rec).Status)
}

func TestCategories_PageAndDetail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodGet, "/categories/page?page=0&linesPerPage=5&orderBy=name&direction=ASC", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page transport.PageResponse[transport.CategoryResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.EqualValues(t, 1, page.Meta["total"])

	rec = env.doJSONRequest(http.MethodGet, "/categories/page?orderBy=secret", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/categories/%d", env.F.Category.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail transport.CategoryDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Len(t, detail.Products, 3)

	rec = env.doJSONRequest(http.MethodGet, "/categories/999", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resource not found: Category id 999", decodeError(t, rec).Message)

	rec = env.doJSONRequest(http.MethodGet, "/categories/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategories_LinkProduct(t *testing.T) {
	env := newTestEnv(t)
	admin, _ := env.login("ana@example.com")

	rec := env.doJSONRequest(http.MethodPost, "/categories", map[string]string{"name": "Escritório"}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created transport.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	path := fmt.Sprintf("/categories/%d/products/%d", created.ID, env.F.Products[1].ID)
	rec = env.doJSONRequest(http.MethodPost, path, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/products/%d", env.F.Products[1].ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var prod transport.ProductDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prod))
	assert.Len(t, prod.Categories, 2)

	rec = env.doJSONRequest(http.MethodDelete, path, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail transport.CategoryDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Empty(t, detail.Products)
}

func TestProducts_SearchAndCreate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodGet, fmt.Sprintf("/products?name=MOU&categories=%d", env.F.Category.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page transport.PageResponse[transport.ProductResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Mouse", page.Data[0].Name)

	rec = env.doJSONRequest(http.MethodGet, "/products?categories=x", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/products/search?q=impressora", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)

	admin, _ := env.login("ana@example.com")
	rec = env.doJSONRequest(http.MethodPost, "/products", map[string]any{
		"name": "Teclado", "price": "150.00", "categories": []uint{env.F.Category.ID},
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "/products/")
}

func TestStates_Cities(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodGet, "/states", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/states/%d/cities", env.F.State.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cities []transport.CityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cities))
	require.Len(t, cities, 1)
	assert.Equal(t, "Uberlândia", cities[0].Name)
}

func TestClients_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/clients", map[string]any{
		"name": "Jo", "email": "bad", "tax_id": "123", "type": "ALIEN", "password": "1",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	fields := map[string]bool{}
	for _, f := range body.Errors {
		fields[f.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["type"])
	assert.True(t, fields["phones"])

	req := map[string]any{
		"name": "Joaquim Silva", "email": "maria@example.com", "tax_id": "12345678901",
		"type": "INDIVIDUAL", "password": "secret1", "phones": []string{"3499998888"},
		"addresses": []map[string]any{{"street": "Rua A", "number": "1", "zip_code": "1", "city_id": env.F.City.ID}},
	}
	rec = env.doJSONRequest(http.MethodPost, "/clients", req, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = decodeError(t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Field)

	req["email"] = "joaquim@example.com"
	rec = env.doJSONRequest(http.MethodPost, "/clients", req, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "/clients/")
}

func TestClients_Authorization(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.login("maria@example.com")
	admin, _ := env.login("ana@example.com")

	rec := env.doJSONRequest(http.MethodGet, fmt.Sprintf("/clients/%d", env.F.Client.ID), nil, client)
	require.Equal(t, http.StatusOK, rec.Code)
	var got transport.ClientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"CLIENT"}, got.Roles)

	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/clients/%d", env.F.Admin.ID), nil, client)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/clients/email?value=maria@example.com", nil, client)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/clients", nil, client)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/clients/page?linesPerPage=1", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var page transport.PageResponse[transport.ClientResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.Equal(t, true, page.Meta["has_next"])

	rec = env.doJSONRequest(http.MethodPut, fmt.Sprintf("/clients/%d/password", env.F.Client.ID), map[string]string{"password": "newpass"}, client)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClients_Update(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.login("maria@example.com")

	rec := env.doJSONRequest(http.MethodPut, fmt.Sprintf("/clients/%d", env.F.Client.ID), map[string]any{
		"name": "Maria Souza", "tax_id": "36378912377", "type": "INDIVIDUAL",
		"phones":    []string{"999"},
		"addresses": []map[string]any{{"street": "Rua B", "number": "2", "zip_code": "2", "city_id": env.F.City.ID}},
	}, client)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/clients/%d", env.F.Client.ID), nil, client)
	var got transport.ClientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Maria Souza", got.Name)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "Rua B", got.Addresses[0].Street)
}

func TestOrders_CreateAndPage(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.login("maria@example.com")

	body := map[string]any{
		"client_id":           env.F.Client.ID,
		"delivery_address_id": env.F.Client.Addresses[0].ID,
		"payment":             map[string]any{"kind": "boleto"},
		"items":               []map[string]any{{"product_id": env.F.Products[2].ID, "quantity": 2}},
	}
	rec := env.doJSONRequest(http.MethodPost, "/orders", body, client)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order transport.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, fmt.Sprintf("/orders/%d", order.ID), rec.Header().Get(echo.HeaderLocation))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(160)), order.Total.String())
	require.NotNil(t, order.Payment)
	assert.NotNil(t, order.Payment.DueDate)

	rec = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil, client)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/orders", nil, client)
	require.Equal(t, http.StatusOK, rec.Code)
	var page transport.PageResponse[transport.OrderResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page.Data, 1)
	assert.EqualValues(t, 24, page.Meta["size"])

	rec = env.doJSONRequest(http.MethodGet, "/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body["payment"] = map[string]any{"kind": "pix"}
	rec = env.doJSONRequest(http.MethodPost, "/orders", body, client)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClients_UploadPictureWithoutStorage(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.login("maria@example.com")

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("file", "me.png")
	require.NoError(t, err)
	_, err = fw.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/clients/picture", &form)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+client)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/clients/picture", nil, client)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
