package main

import (
	"errors"
	"fmt"

	"tiny_mvcc/pkg/logger"
	"tiny_mvcc/pkg/store"
)

func main() {
	log := logger.New(logger.Config{Level: "debug", Format: "console"})
	defer func() { _ = log.Sync() }()

	s := store.New(store.WithLogger(log))

	// Scenario 1: plain write and read across transactions.
	err := s.Update(func(txn *store.Txn) error {
		return s.Put(txn, "HDD", []byte("Hard disk"))
	})
	if err != nil {
		panic(err)
	}

	err = s.Update(func(txn *store.Txn) error {
		return s.Put(txn, "HDD", []byte("Hard disk drive"))
	})
	if err != nil {
		panic(err)
	}

	_ = s.View(func(txn *store.Txn) error {
		value, err := s.Get(txn, "HDD")
		if err != nil {
			return err
		}
		fmt.Println(string(value))
		return nil
	})

	// Scenario 2: snapshot stability. A reader begun before a later commit
	// keeps seeing its own snapshot.
	writer := s.Begin()
	if err := s.Put(writer, "counter", []byte("100")); err != nil {
		panic(err)
	}
	if err := s.Commit(writer); err != nil {
		panic(err)
	}

	reader := s.Begin()

	overwriter := s.Begin()
	_ = s.Put(overwriter, "counter", []byte("200"))
	if err := s.Commit(overwriter); err != nil {
		panic(err)
	}

	stale, err := s.Get(reader, "counter")
	if err != nil {
		panic(err)
	}
	fmt.Println("reader still sees:", string(stale)) // 100

	fresh := s.Begin()
	latest, err := s.Get(fresh, "counter")
	if err != nil {
		panic(err)
	}
	fmt.Println("new txn sees:", string(latest)) // 200

	_ = s.Rollback(reader)
	_ = s.Rollback(fresh)

	// Scenario 3: write-then-delete inside one transaction collapses to a
	// pure delete.
	err = s.Update(func(txn *store.Txn) error {
		if err := s.Put(txn, "scratch", []byte("1")); err != nil {
			return err
		}
		return s.Delete(txn, "scratch")
	})
	if err != nil {
		panic(err)
	}

	err = s.View(func(txn *store.Txn) error {
		_, err := s.Get(txn, "scratch")
		return err
	})
	if !errors.Is(err, store.KeyNotFoundErr) {
		panic("scratch should be gone")
	}
	fmt.Println("scratch deleted, keys:", s.Keys())
}
