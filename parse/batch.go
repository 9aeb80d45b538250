// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parse

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/bufbuild/pegkit/input"
)

// RunAll runs r over each of inputs, with at most parallelism runs at once.
// If parallelism is not positive, it defaults to the number of CPUs.
//
// The results are in the same order as inputs. The first error any run
// returns cancels the rest, and is returned along with the results that
// were completed.
func RunAll(ctx context.Context, r Runner, inputs []input.Input, parallelism int) ([]*Result, error) {
	if parallelism <= 0 {
		parallelism = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	results := make([]*Result, len(inputs))
	sema := semaphore.NewWeighted(int64(parallelism))
	grp, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		if err := sema.Acquire(gctx, 1); err != nil {
			break
		}
		grp.Go(func() error {
			defer sema.Release(1)
			result, err := r.Run(gctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Path(), err)
			}
			results[i] = result
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
