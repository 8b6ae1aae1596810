// Package retry retries catalog operations that fail with transient
// PostgreSQL or network errors, waiting with exponential backoff between
// attempts.
//
//	executor := retry.NewExecutor(
//	    retry.NewPostgreSQLErrorClassifier(),
//	    retry.NewExponentialBackoff(bookxmp.DefaultRetryMaxAttempts),
//	).WithLogger(logger, "catalog connect")
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
package retry
