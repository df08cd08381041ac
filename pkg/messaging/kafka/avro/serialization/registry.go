package serialization

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/Sokol111/schemapub/pkg/messaging/kafka/avro/schema"
	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry"
	"github.com/confluentinc/confluent-kafka-go/v2/schemaregistry/rest"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const schemaTypeAvro = "AVRO"

// RegistryAPI is the part of schemaregistry.Client used here.
type RegistryAPI interface {
	Register(subject string, schema schemaregistry.SchemaInfo, normalize bool) (int, error)
	GetID(subject string, schema schemaregistry.SchemaInfo, normalize bool) (int, error)
	GetBySubjectAndID(subject string, id int) (schemaregistry.SchemaInfo, error)
	GetSubjectsAndVersionsByID(id int) ([]schemaregistry.SubjectAndVersion, error)
	UpdateCompatibility(subject string, update schemaregistry.Compatibility) (schemaregistry.Compatibility, error)
}

// SchemaResolver returns the registry ID of a schema under a subject.
type SchemaResolver interface {
	Resolve(ctx context.Context, subject string, rec schema.Record) (int, error)
}

// RegistryOptions configures RegistryClient.
type RegistryOptions struct {
	CacheCapacity int
	Compatibility string // empty keeps whatever the registry has
	Normalize     bool
}

// RegistryClient registers and looks up schemas, caching IDs by
// (subject, canonical schema). Concurrent lookups of the same key share one
// registry round trip.
type RegistryClient struct {
	api       RegistryAPI
	opts      RegistryOptions
	compat    *schemaregistry.Compatibility
	ids       *idCache
	writers   sync.Map // int -> string
	group     singleflight.Group
	compatMu  sync.Mutex
	compatSet map[string]struct{}
	log       *zap.Logger
}

func NewRegistryClient(api RegistryAPI, opts RegistryOptions, log *zap.Logger) (*RegistryClient, error) {
	if api == nil {
		return nil, fmt.Errorf("registry api cannot be nil")
	}

	var compat *schemaregistry.Compatibility
	if opts.Compatibility != "" {
		var c schemaregistry.Compatibility
		if err := c.ParseString(strings.ToUpper(opts.Compatibility)); err != nil {
			return nil, fmt.Errorf("invalid compatibility mode %s: %w", opts.Compatibility, err)
		}
		compat = &c
	}

	return &RegistryClient{
		api:       api,
		opts:      opts,
		compat:    compat,
		ids:       newIDCache(opts.CacheCapacity),
		compatSet: make(map[string]struct{}),
		log:       log.With(zap.String("component", "schema-registry")),
	}, nil
}

// Register asks the registry to register rec under subject and returns its ID.
// An identical schema already present yields the existing ID.
func (r *RegistryClient) Register(ctx context.Context, subject string, rec schema.Record) (int, error) {
	canonical, err := rec.Canonical()
	if err != nil {
		return 0, fmt.Errorf("invalid schema %s: %w", rec.FullName(), err)
	}

	key := cacheKey{subject: subject, schema: canonical}
	return r.await(ctx, key.flight(), subject, func() (int, error) {
		return r.register(key)
	})
}

// Resolve returns the ID of rec under subject, registering it only when the
// registry does not know it yet. Cached results need no network.
func (r *RegistryClient) Resolve(ctx context.Context, subject string, rec schema.Record) (int, error) {
	canonical, err := rec.Canonical()
	if err != nil {
		return 0, fmt.Errorf("invalid schema %s: %w", rec.FullName(), err)
	}

	key := cacheKey{subject: subject, schema: canonical}
	if id, ok := r.ids.get(key); ok {
		return id, nil
	}

	return r.await(ctx, "resolve/"+key.subject+"/"+key.schema, subject, func() (int, error) {
		if id, ok := r.ids.get(key); ok {
			return id, nil
		}

		id, err := r.api.GetID(key.subject, r.schemaInfo(key.schema), r.opts.Normalize)
		if err == nil {
			r.ids.put(key, id)
			return id, nil
		}
		// Lookup failures of any kind fall through to Register, whose
		// outcome decides: the mock client reports unknown schemas as
		// transport errors.
		r.log.Debug("schema lookup failed, registering",
			zap.String("subject", key.subject), zap.Error(err))

		return r.registerShared(key)
	})
}

// SchemaByID returns the schema text registered under id.
func (r *RegistryClient) SchemaByID(ctx context.Context, id int) (string, error) {
	if cached, ok := r.writers.Load(id); ok {
		return cached.(string), nil
	}

	subject := "id " + strconv.Itoa(id)
	ch := r.group.DoChan("schema/"+strconv.Itoa(id), func() (any, error) {
		associations, err := r.api.GetSubjectsAndVersionsByID(id)
		if err != nil {
			return nil, classify(subject, "", err)
		}
		if len(associations) == 0 {
			return nil, fmt.Errorf("no subjects found for schema ID %d", id)
		}

		info, err := r.api.GetBySubjectAndID(associations[0].Subject, id)
		if err != nil {
			return nil, classify(associations[0].Subject, "", err)
		}
		r.writers.Store(id, info.Schema)
		return info.Schema, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", &RegistryUnavailableError{Subject: subject, Timeout: true, Err: ctx.Err()}
	}
}

// CachedIDs returns the number of cached (subject, schema) entries.
func (r *RegistryClient) CachedIDs() int {
	return r.ids.len()
}

// await runs fn once per key and waits for it or for ctx. A registration
// already sent is not withdrawn when ctx expires.
func (r *RegistryClient) await(ctx context.Context, key, subject string, fn func() (int, error)) (int, error) {
	ch := r.group.DoChan(key, func() (any, error) {
		return fn()
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int), nil
	case <-ctx.Done():
		return 0, &RegistryUnavailableError{Subject: subject, Timeout: true, Err: ctx.Err()}
	}
}

// registerShared joins a Register call already in flight for key.
func (r *RegistryClient) registerShared(key cacheKey) (int, error) {
	v, err, _ := r.group.Do(key.flight(), func() (any, error) {
		return r.register(key)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (r *RegistryClient) register(key cacheKey) (int, error) {
	if err := r.ensureCompatibility(key.subject); err != nil {
		return 0, err
	}

	id, err := r.api.Register(key.subject, r.schemaInfo(key.schema), r.opts.Normalize)
	if err != nil {
		return 0, classify(key.subject, key.schema, err)
	}

	r.ids.put(key, id)
	r.log.Info("schema registered",
		zap.String("subject", key.subject), zap.Int("schemaID", id))
	return id, nil
}

func (r *RegistryClient) ensureCompatibility(subject string) error {
	if r.compat == nil {
		return nil
	}

	r.compatMu.Lock()
	defer r.compatMu.Unlock()

	if _, ok := r.compatSet[subject]; ok {
		return nil
	}

	if _, err := r.api.UpdateCompatibility(subject, *r.compat); err != nil {
		return fmt.Errorf("failed to set compatibility %s for subject %s: %w",
			r.compat.String(), subject, classify(subject, "", err))
	}

	r.compatSet[subject] = struct{}{}
	r.log.Debug("subject compatibility set",
		zap.String("subject", subject), zap.String("compatibility", r.compat.String()))
	return nil
}

func (r *RegistryClient) schemaInfo(canonical string) schemaregistry.SchemaInfo {
	return schemaregistry.SchemaInfo{Schema: canonical, SchemaType: schemaTypeAvro}
}

// classify turns a registry client error into one of the typed errors.
func classify(subject, schemaJSON string, err error) error {
	var restErr *rest.Error
	if errors.As(err, &restErr) {
		status := httpStatus(restErr.Code)
		switch {
		case status == 409 || strings.Contains(strings.ToLower(restErr.Message), "incompatible"):
			return &IncompatibleSchemaError{Subject: subject, Schema: schemaJSON, Reason: restErr.Message}
		case status >= 500:
			return &RegistryUnavailableError{Subject: subject, Err: err}
		default:
			return fmt.Errorf("schema registry rejected request for subject %s: %w", subject, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &RegistryUnavailableError{Subject: subject, Timeout: true, Err: err}
	}

	// *url.Error from the HTTP transport satisfies net.Error.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &RegistryUnavailableError{Subject: subject, Timeout: netErr.Timeout(), Err: err}
	}

	return fmt.Errorf("schema registry request failed for subject %s: %w", subject, err)
}

// httpStatus reduces Confluent error codes such as 40401 or 50001 to the
// HTTP status they extend.
func httpStatus(code int) int {
	for code >= 1000 {
		code /= 10
	}
	return code
}
