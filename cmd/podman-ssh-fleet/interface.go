package main

import "context"

type application interface {
	Start(ctx context.Context, build bool, containers int) error
	Info(ctx context.Context) error
	Stop(ctx context.Context) error
}
