package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/shopspring/decimal"
)

// imageField nombre del campo multipart que trae la imagen.
const imageField = "image"

// formData campos de un formulario multipart o urlencoded, distinguiendo ausente de vacío.
type formData struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

// pathID copia el parámetro :id. Fiber lo devuelve apuntando al buffer de la petición,
// que fasthttp reutiliza, y los repositorios pueden retenerlo.
func pathID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

func parseForm(c *fiber.Ctx) (*formData, error) {
	fd := &formData{values: map[string][]string{}}
	ct := strings.ToLower(string(c.Request().Header.ContentType()))
	if strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("multipart: %w", err)
		}
		fd.values = form.Value
		fd.files = form.File
		return fd, nil
	}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		key := string(k)
		fd.values[key] = append(fd.values[key], string(v))
	})
	return fd, nil
}

// value devuelve el primer valor de key y si estaba presente.
func (f *formData) value(key string) (string, bool) {
	vs, ok := f.values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// optional devuelve un puntero al valor o nil si el campo no vino.
func (f *formData) optional(key string) *string {
	v, ok := f.value(key)
	if !ok {
		return nil
	}
	return &v
}

// price parsea el campo price. ok=false si no vino o vino vacío.
func (f *formData) price() (d decimal.Decimal, ok bool, err error) {
	raw, present := f.value("price")
	raw = strings.TrimSpace(raw)
	if !present || raw == "" {
		return decimal.Zero, false, nil
	}
	d, err = decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, true, nil
}

// image lee en memoria el archivo del campo image. nil si no se adjuntó.
func (f *formData) image() (*dto.UploadedFile, error) {
	headers := f.files[imageField]
	if len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]
	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir imagen: %w", err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("leer imagen: %w", err)
	}
	return &dto.UploadedFile{
		Data:         data,
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get(fiber.HeaderContentType),
	}, nil
}
