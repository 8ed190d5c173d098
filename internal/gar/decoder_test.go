package gar

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addrObjXML = `<?xml version="1.0" encoding="utf-8"?>
<ADDRESSOBJECTS>
  <OBJECT ID="101" OBJECTID="1405113" OBJECTGUID="0c5b2444-70a0-4932-980c-b4dc0d3f02b5"
          NAME="Москва" TYPENAME="г" LEVEL="1" ISACTUAL="1" ISACTIVE="1"/>
  <OBJECT ID="102" OBJECTID="9000001" OBJECTGUID="2c9997fb-2d77-4378-b81b-17d3d5374f4f"
          NAME="Тверская" TYPENAME="ул" LEVEL="8" ISACTUAL="1" ISACTIVE="1"/>
</ADDRESSOBJECTS>`

func TestDecoderReadsRows(t *testing.T) {
	table, ok := Lookup("ADDR_OBJ")
	require.True(t, ok)

	dec := NewDecoder(strings.NewReader(addrObjXML), table)

	first, err := dec.Next()
	require.NoError(t, err)
	require.Len(t, first, len(table.Columns))

	byCol := make(map[string]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		byCol[col] = first[i]
	}
	assert.Equal(t, "101", byCol["ID"])
	assert.Equal(t, "Москва", byCol["NAME"])
	assert.Equal(t, "1", byCol["LEVEL"])
	// Attributes absent from the element bind as NULL.
	assert.Nil(t, byCol["PREVID"])

	second, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, "102", second[0])

	_, err = dec.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestDecoderSkipsForeignElements(t *testing.T) {
	xml := `<ROOT><NOISE A="1"/><HOUSE ID="7" HOUSENUM="12"/><NOISE/></ROOT>`
	table, ok := Lookup("HOUSES")
	require.True(t, ok)

	dec := NewDecoder(strings.NewReader(xml), table)

	row, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, "7", row[0])

	_, err = dec.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestDecoderMalformedXML(t *testing.T) {
	table, _ := Lookup("HOUSES")
	dec := NewDecoder(strings.NewReader(`<ROOT><HOUSE ID="1"/><HOUSE ID="2`), table)

	_, err := dec.Next()
	require.NoError(t, err) // first row parses before the document breaks

	_, err = dec.Next()
	require.Error(t, err)
	assert.False(t, errors.Is(err, io.EOF))
}
