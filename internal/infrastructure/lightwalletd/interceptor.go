package lightwalletd

import (
	"context"
	"time"

	middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// UnaryInterceptor returns the client interceptor chain: every call is
// logged and, if timeout is greater than zero, bounded by it.
func UnaryInterceptor(timeout time.Duration) grpc.DialOption {
	return grpc.WithUnaryInterceptor(
		middleware.ChainUnaryClient(
			unaryLogger,
			unaryTimeout(timeout),
		),
	)
}

func unaryLogger(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	start := time.Now()
	err := invoker(ctx, method, req, reply, cc, opts...)

	entry := log.WithFields(log.Fields{
		"method":  method,
		"elapsed": time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		entry.WithError(err).Debug("lightwalletd call failed")
		return err
	}
	entry.Debug("lightwalletd call")
	return nil
}

func unaryTimeout(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
