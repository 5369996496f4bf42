package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/model"
	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/repository"
)

func (a *testApp) createProduct(t *testing.T, name string, quantity int, price float64, image string) model.Product {
	t.Helper()

	product := model.Product{Name: name, Quantity: quantity, Price: price, Image: image}
	if err := a.db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

func TestProductCRUDRoundTrip(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "shopper@example.com", "secret1", model.RoleUser)
	cookies := app.login(t, "shopper@example.com", "secret1")
	products := repository.NewProductRepository(app.db)

	// Create: {Pen, 10, 1.50, pen.png}
	recorder := app.postForm(t, "/product", url.Values{
		"name":     {"Pen"},
		"quantity": {"10"},
		"price":    {"1.50"},
		"image":    {"pen.png"},
	}, nil)
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/inventory", recorder.Header().Get("Location"))

	list, err := products.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !assert.Len(t, list, 1) {
		return
	}
	pen := list[0]
	assert.Equal(t, "Pen", pen.Name)
	assert.Equal(t, 10, pen.Quantity)
	assert.Equal(t, 1.50, pen.Price)
	assert.Equal(t, "pen.png", pen.Image)

	// The detail page shows it.
	detail := app.get(t, fmt.Sprintf("/product/%d", pen.ID), cookies)
	assert.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "Pen")

	// Update the three mutable fields.
	recorder = app.postForm(t, fmt.Sprintf("/product/%d/update", pen.ID), url.Values{
		"name":     {"Pen Blue"},
		"quantity": {"5"},
		"price":    {"1.75"},
	}, nil)
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/inventory", recorder.Header().Get("Location"))

	updated, err := products.GetByID(pen.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	assert.Equal(t, "Pen Blue", updated.Name)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, 1.75, updated.Price)
	assert.Equal(t, "pen.png", updated.Image, "image must not change on update")

	// Delete, then the product is gone.
	recorder = app.get(t, fmt.Sprintf("/product/%d/delete", pen.ID), nil)
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/inventory", recorder.Header().Get("Location"))

	_, err = products.GetByID(pen.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	detail = app.get(t, fmt.Sprintf("/product/%d", pen.ID), cookies)
	assert.Equal(t, http.StatusNotFound, detail.Code)
	assert.Equal(t, "Product not found", detail.Body.String())
}

func TestShowProductPageNotFound(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "shopper@example.com", "secret1", model.RoleUser)
	cookies := app.login(t, "shopper@example.com", "secret1")

	recorder := app.get(t, "/product/9999", cookies)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Product not found", recorder.Body.String())
}

func TestShowProductPageInvalidID(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "shopper@example.com", "secret1", model.RoleUser)
	cookies := app.login(t, "shopper@example.com", "secret1")

	recorder := app.get(t, "/product/abc", cookies)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Invalid product ID.", recorder.Body.String())
}

func TestProcessAddProductFormValidation(t *testing.T) {
	app := newTestApp(t)

	recorder := app.postForm(t, "/product", url.Values{
		"name":     {"Pen"},
		"quantity": {"ten"},
		"price":    {"1.50"},
	}, nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "The quantity provided is invalid.", recorder.Body.String())
}

func TestProcessAddProductFormUpload(t *testing.T) {
	app := newTestApp(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("name", "Banana")
	writer.WriteField("quantity", "12")
	writer.WriteField("price", "0.80")
	part, err := writer.CreateFormFile("image", "banana.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	io.WriteString(part, "not-really-a-png")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/product", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	app.router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/inventory", recorder.Header().Get("Location"))

	// The upload keeps the client's filename.
	saved, err := os.ReadFile(filepath.Join(app.uploadDir, "banana.png"))
	if err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}
	assert.Equal(t, "not-really-a-png", string(saved))

	var product model.Product
	if err := app.db.First(&product).Error; err != nil {
		t.Fatalf("product row missing: %v", err)
	}
	assert.Equal(t, "Banana", product.Name)
	assert.Equal(t, "banana.png", product.Image)
}

func TestShowInventoryPage(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "boss@example.com", "secret1", model.RoleAdmin)
	app.createProduct(t, "Pen", 10, 1.50, "pen.png")
	app.createProduct(t, "Notebook", 4, 3.20, "notebook.png")
	cookies := app.login(t, "boss@example.com", "secret1")

	recorder := app.get(t, "/inventory", cookies)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "Pen")
	assert.Contains(t, body, "Notebook")
	assert.Contains(t, body, `<a href="/product">Add Product</a>`)
}

func TestShowShoppingPage(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "shopper@example.com", "secret1", model.RoleUser)
	product := app.createProduct(t, "Pen", 10, 1.50, "pen.png")
	cookies := app.login(t, "shopper@example.com", "secret1")

	recorder := app.get(t, "/shopping", cookies)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "Pen")
	assert.Contains(t, body, fmt.Sprintf(`<a href="/product/%d">`, product.ID))
}

func TestShowUpdateProductPagePrefills(t *testing.T) {
	app := newTestApp(t)
	product := app.createProduct(t, "Pen", 10, 1.50, "pen.png")

	recorder := app.get(t, fmt.Sprintf("/product/%d/update", product.ID), nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `value="Pen"`)
	assert.Contains(t, body, `value="10"`)
}

func TestShowAddProductPageRequiresAdmin(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "shopper@example.com", "secret1", model.RoleUser)
	cookies := app.login(t, "shopper@example.com", "secret1")

	recorder := app.get(t, "/product", cookies)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/shopping", recorder.Header().Get("Location"))
}
