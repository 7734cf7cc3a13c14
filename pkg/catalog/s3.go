// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

// Environment variables read when an S3 client is built for a catalog.
const (
	EnvS3Region    = "CATALOG_S3_REGION"
	EnvS3Endpoint  = "CATALOG_S3_ENDPOINT"
	EnvS3PathStyle = "CATALOG_S3_PATH_STYLE"

	defaultS3Region = "us-east-1"
)

// S3GetObjectAPI is the subset of the S3 client used to fetch catalogs.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config holds explicit construction parameters for the S3 client.
type S3Config struct {
	Region    string
	Endpoint  string // optional, for S3-compatible stores such as MinIO
	PathStyle bool
}

// S3ConfigFromEnv reads S3Config from the process environment.
func S3ConfigFromEnv() S3Config {
	return S3Config{
		Region:    os.Getenv(EnvS3Region),
		Endpoint:  os.Getenv(EnvS3Endpoint),
		PathStyle: strings.EqualFold(os.Getenv(EnvS3PathStyle), "true"),
	}
}

// NewS3Client builds an S3 client using the default AWS credential chain.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = defaultS3Region
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to load AWS config", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// S3Source reads a CSV catalog object from an S3 bucket.
type S3Source struct {
	uri    string
	bucket string
	key    string
	client S3GetObjectAPI
}

// NewS3Source returns a source for s3://bucket/key. A nil client is built
// lazily from the environment on first load.
func NewS3Source(bucket, key string, client S3GetObjectAPI) *S3Source {
	return &S3Source{
		uri:    fmt.Sprintf("s3://%s/%s", bucket, key),
		bucket: bucket,
		key:    key,
		client: client,
	}
}

func newS3SourceFromURI(uri string, client S3GetObjectAPI) (*S3Source, error) {
	u, err := parseURI(uri)
	if err != nil {
		return nil, err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid S3 catalog URI: expected s3://bucket/key",
			map[string]any{"uri": uri})
	}
	return NewS3Source(u.Host, key, client), nil
}

// URI returns the s3:// location.
func (s *S3Source) URI() string { return s.uri }

// Load fetches and parses the object. Missing buckets or keys are
// reported as NOT_FOUND.
func (s *S3Source) Load(ctx context.Context) ([]Ingredient, error) {
	if s.client == nil {
		c, err := NewS3Client(ctx, S3ConfigFromEnv())
		if err != nil {
			return nil, err
		}
		s.client = c
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, notFound(s.uri, err)
		}
		return nil, withSource(s.uri, err)
	}
	defer func() {
		if cerr := out.Body.Close(); cerr != nil {
			slog.Warn("failed to close S3 object body", "uri", s.uri, "error", cerr)
		}
	}()

	return ParseCSV(out.Body)
}

func isS3NotFound(err error) bool {
	var nsk *types.NoSuchKey
	if stderrors.As(err, &nsk) {
		return true
	}
	var nsb *types.NoSuchBucket
	if stderrors.As(err, &nsb) {
		return true
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}
	return false
}
