package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect abre una conexión y verifica con Ping dentro del timeout. El llamador debe cerrar el cliente.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().
		ApplyURI(uri).
		SetAppName("partsunlimited-seed").
		SetRetryWrites(false) // Cosmos DB (API para MongoDB) no admite retryable writes
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, translate("connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, translate("ping", err)
	}
	return client, nil
}
