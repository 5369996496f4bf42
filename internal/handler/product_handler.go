package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/model"
	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/repository"
)

// ProductHandler groups the catalog pages and the product CRUD routes.
type ProductHandler struct {
	Store     *sessions.CookieStore
	Products  *repository.ProductRepository
	UploadDir string
}

// sessionUser pulls the user the auth gate stashed in the context.
// Ungated routes get the zero value.
func sessionUser(c *gin.Context) model.User {
	if data, exists := c.Get("user"); exists {
		if user, ok := data.(model.User); ok {
			return user
		}
	}
	return model.User{}
}

// ShowInventoryPage lists every product for the admin view.
func (h *ProductHandler) ShowInventoryPage(c *gin.Context) {
	products, err := h.Products.List()
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		c.String(http.StatusInternalServerError, "Error fetching products")
		return
	}

	c.HTML(http.StatusOK, "inventory.html", gin.H{
		"User":     sessionUser(c),
		"Products": products,
	})
}

// ShowShoppingPage lists every product for the shopper view.
func (h *ProductHandler) ShowShoppingPage(c *gin.Context) {
	products, err := h.Products.List()
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		c.String(http.StatusInternalServerError, "Error fetching products")
		return
	}

	c.HTML(http.StatusOK, "shopping.html", gin.H{
		"User":     sessionUser(c),
		"Products": products,
	})
}

// ShowProductPage renders a single product's detail page.
func (h *ProductHandler) ShowProductPage(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid product ID.")
		return
	}

	product, err := h.Products.GetByID(id)
	if errors.Is(err, repository.ErrProductNotFound) {
		c.String(http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching product %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Error fetching product")
		return
	}

	c.HTML(http.StatusOK, "product.html", gin.H{
		"User":    sessionUser(c),
		"Product": product,
	})
}

// ShowAddProductPage renders the add-product form.
func (h *ProductHandler) ShowAddProductPage(c *gin.Context) {
	c.HTML(http.StatusOK, "addProduct.html", gin.H{
		"User": sessionUser(c),
	})
}

// ProcessAddProductForm creates a product. An attached image file is
// written to the upload directory under its original client-supplied
// filename, silently overwriting any previous upload with the same
// name; without a file the posted image field is stored as-is.
func (h *ProductHandler) ProcessAddProductForm(c *gin.Context) {
	name := c.PostForm("name")
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		c.String(http.StatusBadRequest, "The quantity provided is invalid.")
		return
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "The price provided is invalid.")
		return
	}

	image := c.PostForm("image")
	if file, err := c.FormFile("image"); err == nil {
		destination := filepath.Join(h.UploadDir, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, destination); err != nil {
			c.String(http.StatusInternalServerError, fmt.Sprintf("Error saving file: %s", err.Error()))
			return
		}
		image = filepath.Base(file.Filename)
	}

	newProduct := model.Product{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Image:    image,
	}

	if err := h.Products.Create(&newProduct); err != nil {
		log.Printf("Error adding product: %v", err)
		c.String(http.StatusInternalServerError, "Error adding product")
		return
	}

	c.Redirect(http.StatusFound, "/inventory")
}

// ShowUpdateProductPage renders the update form prefilled with the
// product's current values.
func (h *ProductHandler) ShowUpdateProductPage(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid product ID.")
		return
	}

	product, err := h.Products.GetByID(id)
	if errors.Is(err, repository.ErrProductNotFound) {
		c.String(http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("Error fetching product %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Error fetching product")
		return
	}

	c.HTML(http.StatusOK, "updateProduct.html", gin.H{
		"Product": product,
	})
}

// ProcessUpdateProductForm overwrites name, quantity and price. The
// image keeps whatever was stored at creation.
func (h *ProductHandler) ProcessUpdateProductForm(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid product ID.")
		return
	}

	name := c.PostForm("name")
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		c.String(http.StatusBadRequest, "The quantity provided is invalid.")
		return
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "The price provided is invalid.")
		return
	}

	if err := h.Products.Update(id, name, quantity, price); err != nil {
		log.Printf("Error updating product: %v", err)
		c.String(http.StatusInternalServerError, "Error updating product")
		return
	}

	c.Redirect(http.StatusFound, "/inventory")
}

// DeleteProduct removes a product and returns to the inventory.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parseProductID(c)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid product ID.")
		return
	}

	if err := h.Products.Delete(id); err != nil {
		log.Printf("Error deleting product: %v", err)
		c.String(http.StatusInternalServerError, "Error deleting product")
		return
	}

	c.Redirect(http.StatusFound, "/inventory")
}

func parseProductID(c *gin.Context) (uint, error) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id64), nil
}
