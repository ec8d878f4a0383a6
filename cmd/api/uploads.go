package main

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/backend/internal/apierror"
	"github.com/vidtube/backend/internal/metrics"
	"github.com/vidtube/backend/internal/storage"
)

// uploadAsset stages a multipart file locally and pushes it through the
// media gateway under prefix/<uuid><ext>. On any failure no asset reference
// may be persisted by the caller.
func (api *API) uploadAsset(c *gin.Context, file *multipart.FileHeader, prefix string) (*storage.Asset, error) {
	ext := filepath.Ext(file.Filename)
	tempPath := filepath.Join(os.TempDir(), uuid.New().String()+ext)
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		return nil, apierror.Internal("failed to save uploaded file")
	}
	defer os.Remove(tempPath)

	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
	asset, err := api.media.UploadFile(c.Request.Context(), objectName, tempPath)
	if err != nil {
		api.log.ErrorWithErr("asset upload failed", err)
		return nil, apierror.Upload("failed to upload asset")
	}

	return asset, nil
}

// deleteAssetQuietly is the fire-and-forget cleanup used when an asset has
// been replaced: the primary record write already succeeded, so a cleanup
// failure is logged and counted but not surfaced.
func (api *API) deleteAssetQuietly(ctx context.Context, assetID string) {
	if assetID == "" {
		return
	}
	if err := api.media.Delete(ctx, assetID); err != nil {
		metrics.AssetDeleteFailuresTotal.Inc()
		api.log.WithField("asset_id", assetID).ErrorWithErr("asset cleanup failed", err)
	}
}
