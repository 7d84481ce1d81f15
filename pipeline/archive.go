package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"healthfeed/common"
	"healthfeed/types"
)

const archiveUploadTimeout = 30 * time.Second

// S3Archiver exports enriched article generations to S3 as JSON, one
// object per article. The archive is write-only: it is never read back and
// does not make the cache persistent.
type S3Archiver struct {
	s3     *common.S3
	bucket string
	prefix string
}

// NewS3Archiver returns an archiver writing under bucket/prefix.
func NewS3Archiver(s3 *common.S3, bucket, prefix string) *S3Archiver {
	return &S3Archiver{s3: s3, bucket: bucket, prefix: prefix}
}

// ArchiveAll uploads every article of the generation. Failures are logged
// and never interrupt the pipeline.
func (a *S3Archiver) ArchiveAll(ctx context.Context, generation string, articles []types.Article) {
	uploaded := 0
	for _, article := range articles {
		uctx, cancel := context.WithTimeout(ctx, archiveUploadTimeout)
		err := a.archiveOne(uctx, generation, article)
		cancel()
		if err != nil {
			log.Printf("archive failed for article %d: %v", article.ID, err)
			continue
		}
		uploaded++
	}
	log.Printf("archived %d/%d article(s) to s3://%s/%s", uploaded, len(articles), a.bucket, a.prefix)
}

func (a *S3Archiver) archiveOne(ctx context.Context, generation string, article types.Article) error {
	b, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%sarticles/%s/%d.json", a.prefix, generation, article.ID)
	return a.s3.Put(ctx, a.bucket, key, bytes.NewReader(b), "application/json")
}
