package domain

import (
	"context"
)

// ServicePort defines the annotate service interface
type ServicePort interface {
	Annotate(ctx context.Context, in AnnotateInput) (AnnotateOutput, error)
	Kinds(ctx context.Context, in KindsInput) (KindsOutput, error)
}

// ReadyPort is satisfied by the model behind the service
type ReadyPort interface {
	Ping(ctx context.Context) error
}
