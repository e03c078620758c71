package dummydb

import (
	"sync"

	"github.com/trezcool/classease/core/student"
)

type (
	DB struct {
		student *studentTable
	}

	studentTable struct {
		sync.RWMutex
		table  map[int64]*student.Student
		pkLast int64
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{table: make(map[int64]*student.Student)},
	}
	return db, nil
}
