package cache

import (
	"bytes"
	"encoding/gob"

	"github.com/golang/glog"
)

type s struct {
	V string
}

type i struct {
	V int64
}

// SetString is a utility function to put a string into cache
func SetString(key string, data string, timeToLive int32) {
	setGob(key, s{V: data}, timeToLive)
}

// GetString is a utility function to get a string from cache
func GetString(key string) (string, bool) {
	var val s
	if ok := getGob(key, &val); ok {
		return val.V, true
	}

	return "", false
}

// SetInt64 is a utility function to put an int64 into cache
func SetInt64(key string, data int64, timeToLive int32) {
	setGob(key, i{V: data}, timeToLive)
}

// GetInt64 is a utility function to get an int64 from cache
func GetInt64(key string) (int64, bool) {
	var val i
	if ok := getGob(key, &val); ok {
		return val.V, true
	}

	return 0, false
}

func setGob(key string, data interface{}, timeToLive int32) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(data); err != nil {
		glog.Errorf("enc.Encode(data) %+v", err)
		return
	}

	Set(key, buf.Bytes(), timeToLive)
}

func getGob(key string, dst interface{}) bool {
	value, ok := Get(key)
	if !ok {
		return false
	}

	dec := gob.NewDecoder(bytes.NewReader(value))
	if err := dec.Decode(dst); err != nil {
		glog.Errorf("dec.Decode(dst) %+v", err)
		return false
	}

	return true
}
