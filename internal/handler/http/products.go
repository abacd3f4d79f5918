package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ferrari-store/internal/app"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// multipartOverhead is the room left for multipart headers on top of the
// configured image size limit.
const multipartOverhead = 64 << 10

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilterFromQuery(r)
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("bad catalog query")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	page, err := h.services.ProductService.ListProducts(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, "error listing products")
		return
	}

	writeJSON(w, r, page, http.StatusOK)
}

func productFilterFromQuery(r *http.Request) (models.ProductFilter, error) {
	q := r.URL.Query()
	filter := models.ProductFilter{
		Type:   models.ProductType(q.Get("type")),
		Search: q.Get("q"),
		Sort:   models.ProductSort(q.Get("sort")),
	}

	var err error
	if filter.CategoryID, err = queryInt64(r, "category_id"); err != nil {
		return filter, err
	}
	if filter.MinPriceCents, err = queryInt64(r, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPriceCents, err = queryInt64(r, "max_price"); err != nil {
		return filter, err
	}
	if filter.FeaturedOnly, err = queryBool(r, "featured"); err != nil {
		return filter, err
	}
	if filter.InStockOnly, err = queryBool(r, "in_stock"); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		return filter, err
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.services.ProductService.GetProduct(r.Context(), productID)
	if err != nil {
		writeServiceError(w, r, err, "error getting product")
		return
	}

	writeJSON(w, r, product, http.StatusOK)
}

func (h *Handler) getProductBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.services.ProductService.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err, "error getting product")
		return
	}

	writeJSON(w, r, product, http.StatusOK)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if !decodeJSON(w, r, &product) {
		return
	}

	created, err := h.services.ProductService.CreateProduct(r.Context(), product)
	if err != nil {
		writeServiceError(w, r, err, "error creating product")
		return
	}

	writeJSON(w, r, created, http.StatusCreated)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var update models.ProductUpdate
	if !decodeJSON(w, r, &update) {
		return
	}
	update.ProductID = productID

	updated, err := h.services.ProductService.UpdateProduct(r.Context(), update)
	if err != nil {
		writeServiceError(w, r, err, "error updating product")
		return
	}

	writeJSON(w, r, updated, http.StatusOK)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.services.ProductService.DeleteProduct(r.Context(), productID); err != nil {
		writeServiceError(w, r, err, "error deleting product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// uploadProductImage accepts a multipart form with the file in the "image"
// field.
func (h *Handler) uploadProductImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	productID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.files.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.files.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, app.MsgImageTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		log.Debug().Err(err).Msg("bad multipart form")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Debug().Err(err).Msg("no image in form")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	defer file.Close()

	product, err := h.services.ProductService.UploadImage(r.Context(), productID, header.Filename, file)
	if err != nil {
		writeServiceError(w, r, err, "error uploading product image")
		return
	}

	writeJSON(w, r, product, http.StatusOK)
}
