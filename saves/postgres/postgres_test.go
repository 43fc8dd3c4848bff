// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postgres

import (
	"context"
	"os"
	"testing"

	"cogentcore.org/ennoea/saves/savestest"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	dsn := os.Getenv("ENNOEA_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("ENNOEA_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	s, err := New(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()
	_, err = s.DB().ExecContext(ctx, `DELETE FROM architectures`)
	require.NoError(t, err)
	savestest.Run(t, s)
}
