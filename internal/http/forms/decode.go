package forms

import (
	"mime"
	"net/http"

	"github.com/ajg/form"
	"github.com/go-chi/render"
)

// maxMultipartMemory ограничивает память под поля multipart-формы.
const maxMultipartMemory = 1 << 20

// Decode разбирает тело запроса в v. JSON и urlencoded-форму разбирает render,
// поля multipart-формы переносятся в v через ajg/form.
func Decode(r *http.Request, v any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return render.Decode(r, v)
	}
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return err
	}
	return form.DecodeValues(v, r.PostForm)
}
