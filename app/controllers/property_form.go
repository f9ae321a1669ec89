package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/services"
)

const (
	maxImageBytes = 5 << 20  // per uploaded file
	maxFormMemory = 32 << 20 // multipart parse buffer
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// amenityFields maps form field names to their flag on models.Amenities.
var amenityFields = map[string]func(*models.Amenities, bool){
	"lift":          func(a *models.Amenities, v bool) { a.Lift = models.Boolish(v) },
	"securityGuard": func(a *models.Amenities, v bool) { a.SecurityGuard = models.Boolish(v) },
	"playGround":    func(a *models.Amenities, v bool) { a.PlayGround = models.Boolish(v) },
	"garden":        func(a *models.Amenities, v bool) { a.Garden = models.Boolish(v) },
	"waterSupply":   func(a *models.Amenities, v bool) { a.WaterSupply = models.Boolish(v) },
	"powerBackup":   func(a *models.Amenities, v bool) { a.PowerBackup = models.Boolish(v) },
	"parkingArea":   func(a *models.Amenities, v bool) { a.ParkingArea = models.Boolish(v) },
	"gym":           func(a *models.Amenities, v bool) { a.Gym = models.Boolish(v) },
	"shoppingMall":  func(a *models.Amenities, v bool) { a.ShoppingMall = models.Boolish(v) },
	"hospital":      func(a *models.Amenities, v bool) { a.Hospital = models.Boolish(v) },
	"school":        func(a *models.Amenities, v bool) { a.School = models.Boolish(v) },
	"marketArea":    func(a *models.Amenities, v bool) { a.MarketArea = models.Boolish(v) },
}

// decodePropertyForm reads a multipart listing submission into the service
// input plus the raw image uploads. All failures come back as validation
// errors for a 400.
func decodePropertyForm(r *http.Request) (services.PropertyInput, []services.ImageUpload, error) {
	var in services.PropertyInput

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return in, nil, services.Validation("expected a multipart form submission")
	}

	in.PropertyName = formString(r, "propertyName")
	in.Address = formString(r, "address")
	in.Description = formString(r, "description")
	in.Type = formString(r, "type")
	in.Offer = formString(r, "offer")
	in.Status = formString(r, "status")
	in.Furnished = formString(r, "furnished")
	in.Loan = formString(r, "loan")

	var err error
	if in.Price, err = formFloat(r, "price"); err != nil {
		return in, nil, err
	}
	if in.Deposit, err = formFloat(r, "deposit"); err != nil {
		return in, nil, err
	}
	intFields := []struct {
		name string
		dest **int
	}{
		{"bhk", &in.Bhk},
		{"bedroom", &in.Bedroom},
		{"bathroom", &in.Bathroom},
		{"balcony", &in.Balcony},
		{"carpet", &in.Carpet},
		{"age", &in.Age},
		{"totalFloors", &in.TotalFloors},
		{"roomFloor", &in.RoomFloor},
	}
	for _, f := range intFields {
		if *f.dest, err = formInt(r, f.name); err != nil {
			return in, nil, err
		}
	}

	in.Amenities = decodeAmenities(r)

	uploads, err := decodeImages(r)
	if err != nil {
		return in, nil, err
	}
	return in, uploads, nil
}

// decodeAmenities builds the flag set when at least one amenity field was
// submitted; absent flags within a submission default to false.
func decodeAmenities(r *http.Request) *models.Amenities {
	supplied := false
	amenities := &models.Amenities{}
	for name, set := range amenityFields {
		values, ok := r.Form[name]
		if !ok {
			continue
		}
		supplied = true
		if len(values) > 0 {
			set(amenities, models.ParseBoolish(values[0]))
		}
	}
	if !supplied {
		return nil
	}
	return amenities
}

func decodeImages(r *http.Request) ([]services.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) > models.MaxImages {
		return nil, services.Validation(fmt.Sprintf("a property can have at most %d images", models.MaxImages))
	}

	uploads := make([]services.ImageUpload, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxImageBytes {
			return nil, services.Validation(fmt.Sprintf("image %s exceeds the %dMB limit", header.Filename, maxImageBytes>>20))
		}

		file, err := header.Open()
		if err != nil {
			return nil, services.Validation(fmt.Sprintf("could not read image %s", header.Filename))
		}
		data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
		file.Close()
		if err != nil {
			return nil, services.Validation(fmt.Sprintf("could not read image %s", header.Filename))
		}
		if len(data) > maxImageBytes {
			return nil, services.Validation(fmt.Sprintf("image %s exceeds the %dMB limit", header.Filename, maxImageBytes>>20))
		}

		contentType := http.DetectContentType(data)
		if !allowedImageTypes[contentType] {
			return nil, services.Validation(fmt.Sprintf("image %s must be a jpeg, png or webp file", header.Filename))
		}

		uploads = append(uploads, services.ImageUpload{Data: data, ContentType: contentType})
	}
	return uploads, nil
}

func formString(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func formFloat(r *http.Request, name string) (*float64, error) {
	v := formString(r, name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, services.Validation(fmt.Sprintf("invalid %s value %q", name, v))
	}
	return &n, nil
}

func formInt(r *http.Request, name string) (*int, error) {
	v := formString(r, name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, services.Validation(fmt.Sprintf("invalid %s value %q", name, v))
	}
	return &n, nil
}
