// common.go
//
// Document version lifecycle service for the RyR back-office
// Copyright (c) 2026 N. Rodriguez
//
// This file is part of ryr-documentos.
// ryr-documentos is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// ryr-documentos is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with ryr-documentos.
// If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"mime/multipart"

	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/gofiber/fiber/v2"
)

// formUpload converts the multipart file field into an engine upload.
func formUpload(c *fiber.Ctx, field string) (services.Upload, func() error, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return services.Upload{}, nil, types.Validationf("multipart field %q is required", field)
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (services.Upload, func() error, error) {
	f, err := fh.Open()
	if err != nil {
		return services.Upload{}, nil, types.Validationf("failed to open upload: %v", err)
	}
	up := services.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        f,
	}
	if up.ContentType == "" {
		up.ContentType = fiber.MIMEOctetStream
	}
	return up, f.Close, nil
}

// optionalString returns a pointer to the form value, or nil when absent.
func optionalString(c *fiber.Ctx, field string) *string {
	v := c.FormValue(field)
	if v == "" {
		return nil
	}
	return &v
}

// reasonBody is the JSON body of destructive operations.
type reasonBody struct {
	Reason string `json:"reason"`
}
