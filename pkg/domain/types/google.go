package types

type GoogleProjectID string

func (x GoogleProjectID) String() string { return string(x) }

type BQDatasetID string

func (x BQDatasetID) String() string { return string(x) }

type BQTableID string

func (x BQTableID) String() string { return string(x) }
