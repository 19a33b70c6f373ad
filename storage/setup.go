// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/worldstore/fault"
)

// Pools - the exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Resources   *PoolHandle `prefix:"R"`
	Owners      *PoolHandle `prefix:"O"`
	Writers     *PoolHandle `prefix:"W"`
	OwnerCount  *PoolHandle `prefix:"C"`
	Initialized *PoolHandle `prefix:"I"`
	Metadata    *PoolHandle `prefix:"M"`
	Records     *PoolHandle `prefix:"S"`
	Events      *PoolHandle `prefix:"E"`
	Instances   *PoolHandle `prefix:"H"`
	Meta        *PoolHandle `prefix:"X"`
	TestData    *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Database - one leveldb with its pools and its single batch
type Database struct {
	sync.Mutex
	db     *leveldb.DB
	access Access
	trx    *TransactionData
	Pool   Pools
}

// Open - open or create a database directory
func Open(name string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - a database that lives only as long as the process
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*Database, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	// prevent readOnly from modifying the database
	if readOnly && version != currentDBVersion {
		logger.Criticalf("database is inconsistent: version: %d  current: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database is inconsistent: version: %d  current: %d", version, currentDBVersion)
	}

	if 0 == version {
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			return nil, err
		}
	}

	d := &Database{
		db:     db,
		access: newDA(db, new(leveldb.Batch), newCache()),
	}
	d.trx = newTransaction(d.access, &d.Pool)

	if err := d.setupPools(); nil != err {
		return nil, err
	}

	ok = true // prevent db close
	return d, nil
}

func (d *Database) setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(d.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&d.Pool).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s reuses prefix: %q of pool: %s", fieldInfo.Name, prefixTag, other)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			access: d.access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - close the database connection
func (d *Database) Close() {
	d.Lock()
	defer d.Unlock()

	if nil != d.db {
		d.db.Close()
		d.db = nil
	}
}

// Begin - start the single exclusive transaction
func (d *Database) Begin() (Transaction, error) {
	if err := d.access.Begin(); nil != err {
		return nil, err
	}
	return d.trx, nil
}

// Version - the stored database version
func (d *Database) Version() int {
	v, err := getVersion(d.db)
	logger.PanicIfError("storage.Version", err)
	return v
}

// return the version number, zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fault.Wrapf(fault.ErrTruncatedRecord, "database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
