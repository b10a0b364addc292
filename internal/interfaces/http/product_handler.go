package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/agroportal-api/internal/application/dto"
	"github.com/tu-usuario/agroportal-api/internal/application/usecase"
	"github.com/tu-usuario/agroportal-api/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP para productos. A diferencia del
// resto de entidades con imagen, un producto lleva una galería: en la edición
// el cliente indica qué URLs existentes conserva (kept_images) y el resto se
// elimina del bucket.
type ProductHandler struct {
	uc   *usecase.ListUseCase[entity.Product]
	list fiber.Handler
	get  fiber.Handler
	del  fiber.Handler
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ListUseCase[entity.Product]) *ProductHandler {
	return &ProductHandler{
		uc:   uc,
		list: listEndpoint(uc, dto.ToProductResponse),
		get:  getEndpoint(uc, dto.ToProductResponse),
		del:  deleteEndpoint(uc, dto.ToProductResponse, func(p entity.Product) []string { return p.Images }),
	}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página (desde 1)"
// @Param        per_page  query  int     false  "Elementos por página"
// @Param        search    query  string  false  "Búsqueda por nombre, categoría o descripción"
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error { return h.list(c) }

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error { return h.get(c) }

// Create godoc
// @Summary      Crear producto (admin)
// @Tags         products
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  dto.MutationResponse[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y category son requeridos"})
	}
	if in.Price.IsNegative() || in.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "price y stock no pueden ser negativos"})
	}
	files, err := collectFiles(c, "images")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudieron leer las imágenes"})
	}
	defer closeFiles(files)

	rec := &entity.Product{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedBy:   GetUserID(c),
	}
	res := h.uc.Manager("").Create(c.Context(), rec, files, func(r *entity.Product, urls []string) {
		r.Images = urls
	})
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToProductResponse))
	}
	return c.Status(fiber.StatusCreated).JSON(toMutationResponse(res, dto.ToProductResponse))
}

// Update godoc
// @Summary      Actualizar producto (admin)
// @Tags         products
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse[dto.ProductResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	existing, err := h.uc.Store().GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if existing == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}

	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y category son requeridos"})
	}
	if in.Price.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "price no puede ser negativo"})
	}
	files, err := collectFiles(c, "images")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudieron leer las imágenes"})
	}
	defer closeFiles(files)

	kept, replaced := splitKeptImages(existing.Images, in.KeptImages)
	rec := &entity.Product{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Images:      kept,
	}
	res := h.uc.Manager("").Update(c.Context(), id, rec, files, func(r *entity.Product, urls []string) {
		r.Images = append(r.Images, urls...)
	}, replaced)
	if !res.Success {
		return c.Status(fiber.StatusInternalServerError).JSON(toMutationResponse(res, dto.ToProductResponse))
	}
	return c.JSON(toMutationResponse(res, dto.ToProductResponse))
}

// Delete godoc
// @Summary      Eliminar producto (admin)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse[dto.ProductResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error { return h.del(c) }

// splitKeptImages separa las imágenes existentes en conservadas y sustituidas.
// Solo pueden conservarse URLs que ya pertenecían al producto.
func splitKeptImages(existing, requested []string) (kept, replaced []string) {
	keep := make(map[string]bool, len(requested))
	for _, u := range requested {
		keep[u] = true
	}
	for _, u := range existing {
		if keep[u] {
			kept = append(kept, u)
		} else {
			replaced = append(replaced, u)
		}
	}
	return kept, replaced
}
