package seeder_test

import (
	"github.com/heartmarshall/omw-seeder/internal/adapter/postgres/synset"
	"github.com/heartmarshall/omw-seeder/internal/app/seeder"
)

// Compile-time check: *synset.Repo must satisfy SynsetBulkRepo.
var _ seeder.SynsetBulkRepo = (*synset.Repo)(nil)
