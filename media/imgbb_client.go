package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/course_market/models"
	"github.com/anjiri1684/course_market/utils"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ImgbbClient hosts course cover images on imgbb.
type ImgbbClient struct {
	client *resty.Client
	apiKey string
}

func NewImgbbClient(baseURL, apiKey string, timeout time.Duration) *ImgbbClient {
	return &ImgbbClient{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		apiKey: apiKey,
	}
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		DisplayURL string `json:"display_url"`
		DeleteURL  string `json:"delete_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// stripDataURI drops a "data:image/...;base64," prefix if the browser sent one.
func stripDataURI(image string) string {
	if strings.HasPrefix(image, "data:") {
		if i := strings.Index(image, ","); i >= 0 {
			return image[i+1:]
		}
	}
	return image
}

// UploadImage uploads a base64 encoded image under a random five character name.
func (c *ImgbbClient) UploadImage(ctx context.Context, base64Image string) (*models.Image, error) {
	name, err := utils.RandomName(5)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetFormData(map[string]string{
			"image": stripDataURI(base64Image),
			"name":  name,
		}).
		Post("/1/upload")
	if err != nil {
		return nil, errors.Wrap(err, "imgbb upload")
	}

	var body imgbbResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, errors.Wrapf(err, "imgbb upload: status %d", resp.StatusCode())
	}
	if resp.IsError() || !body.Success {
		return nil, fmt.Errorf("imgbb upload: status %d: %s", resp.StatusCode(), body.Error.Message)
	}
	return &models.Image{DisplayURL: body.Data.DisplayURL, DeleteURL: body.Data.DeleteURL}, nil
}
