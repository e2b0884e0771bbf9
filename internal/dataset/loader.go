// Package dataset loads the static {campaigns, metrics} dataset that feeds
// the aggregation engine when no database is configured. Sources are a local
// JSON file or an s3://bucket/key object.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/ignite/admetrics/internal/config"
	"github.com/ignite/admetrics/internal/domain"
)

// Loader reads a Dataset from the configured source.
type Loader struct {
	cfg config.DatasetConfig
	log logrus.FieldLogger
}

// NewLoader creates a loader for the configured dataset source.
func NewLoader(cfg config.DatasetConfig) *Loader {
	return &Loader{
		cfg: cfg,
		log: logrus.WithField("component", "dataset"),
	}
}

// Load fetches and decodes the dataset. The JSON shape is
// {"campaigns": [...], "metrics": [...]}; event timestamps are kept as raw
// strings (validation belongs to the aggregation engine).
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	var raw []byte
	var err error

	if strings.HasPrefix(l.cfg.Source, "s3://") {
		raw, err = l.loadS3(ctx)
	} else {
		raw, err = os.ReadFile(l.cfg.Source)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", l.cfg.Source, err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset %q: %w", l.cfg.Source, err)
	}

	l.log.WithFields(logrus.Fields{
		"campaigns": len(ds.Campaigns),
		"metrics":   len(ds.Metrics),
	}).Info("dataset loaded")
	return &ds, nil
}

func (l *Loader) loadS3(ctx context.Context) ([]byte, error) {
	bucket, key, err := parseS3URI(l.cfg.Source)
	if err != nil {
		return nil, err
	}

	var opts []func(*awsconfig.LoadOptions) error
	if l.cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(l.cfg.S3Region))
	}
	if l.cfg.AWSProfile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(l.cfg.AWSProfile))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// parseS3URI splits "s3://bucket/key/with/slashes" into bucket and key.
func parseS3URI(uri string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(uri, "s3://")
	slash := strings.Index(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return "", "", fmt.Errorf("malformed s3 uri %q (want s3://bucket/key)", uri)
	}
	return rest[:slash], rest[slash+1:], nil
}
