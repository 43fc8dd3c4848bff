// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package s3 provides a [saves.Backend] in an S3 compatible bucket,
// with the same layout as the file system backend: the objects
// {prefix}{id}/saveInfo.json and {prefix}{id}/architecture.json.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/ennoea/arch"
	"cogentcore.org/ennoea/saves"
	"cogentcore.org/ennoea/saves/fsys"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config has the settings of an S3 store.
type Config struct {

	// Bucket is the bucket name. It is required.
	Bucket string

	// Prefix is prepended to all object keys.
	Prefix string

	// Region defaults to us-east-1.
	Region string

	// Endpoint is an optional custom endpoint, such as a MinIO server.
	Endpoint string

	// PathStyle uses path style addressing, as needed by most
	// custom endpoints.
	PathStyle bool

	// AccessKeyID and SecretAccessKey are optional static credentials.
	// The default credential chain is used without them.
	AccessKeyID     string
	SecretAccessKey string
}

// Store is an S3 [saves.Backend].
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// New returns a new store with the given config. The option functions
// are applied to the S3 client options after the config.
func New(ctx context.Context, cfg Config, optFns ...func(*s3.Options)) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	}, func(o *s3.Options) {
		for _, fn := range optFns {
			fn(o)
		}
	})
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *Store) key(id, file string) string {
	return s.prefix + id + "/" + file
}

func (s *Store) List(ctx context.Context) ([]saves.Summary, error) {
	list := []saves.Summary{}
	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{Bucket: &s.bucket, Prefix: &s.prefix, ContinuationToken: token})
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			k := aws.ToString(obj.Key)
			if !strings.HasSuffix(k, "/"+fsys.InfoFile) {
				continue
			}
			b, err := s.read(ctx, k)
			if err != nil {
				return nil, err
			}
			var sum saves.Summary
			if errors.Log(jsonx.ReadBytes(&sum, b)) != nil {
				continue
			}
			list = append(list, sum)
		}
		if aws.ToBool(out.IsTruncated) && out.NextContinuationToken != nil {
			token = out.NextContinuationToken
			continue
		}
		break
	}
	saves.SortSummaries(list)
	return list, nil
}

func (s *Store) Get(ctx context.Context, id string) (*arch.Document, error) {
	if saves.ValidID(id) != nil {
		return nil, saves.ErrNotFound
	}
	b, err := s.read(ctx, s.key(id, fsys.DocumentFile))
	if err != nil {
		return nil, err
	}
	return arch.Decode(b, arch.JSON)
}

func (s *Store) Put(ctx context.Context, doc *arch.Document) (saves.Summary, error) {
	d, sum := saves.Prepare(doc)
	if err := saves.ValidID(sum.ID); err != nil {
		return saves.Summary{}, err
	}
	db, err := d.Encode()
	if err != nil {
		return saves.Summary{}, err
	}
	ib, err := jsonx.WriteBytesIndent(&sum)
	if err != nil {
		return saves.Summary{}, err
	}
	// the summary goes last, so that listed documents are complete
	if err := s.write(ctx, s.key(sum.ID, fsys.DocumentFile), db); err != nil {
		return saves.Summary{}, err
	}
	if err := s.write(ctx, s.key(sum.ID, fsys.InfoFile), ib); err != nil {
		return saves.Summary{}, err
	}
	return sum, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		var re *awshttp.ResponseError
		if errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound {
			return nil, saves.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(io.LimitReader(out.Body, arch.MaxSize+1))
}

func (s *Store) write(ctx context.Context, key string, b []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
