package request

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRepresentativeRequestValidate(t *testing.T) {
	valid := RegisterRepresentativeRequest{PhoneCode: "58", PhoneNumber: "4121234567", Name: "María Pérez"}
	assert.NoError(t, valid.Validate())

	missingName := valid
	missingName.Name = ""
	assert.Error(t, missingName.Validate())

	letters := valid
	letters.PhoneNumber = "412ABC4567"
	assert.Error(t, letters.Validate())

	shortNumber := valid
	shortNumber.PhoneNumber = "412"
	assert.Error(t, shortNumber.Validate())
}

func TestCreateStudentRequestValidate(t *testing.T) {
	valid := CreateStudentRequest{RepresentativeID: 584121234567, Name: "Pedro", Grade: "3", Section: "A"}
	assert.NoError(t, valid.Validate())

	noRep := valid
	noRep.RepresentativeID = 0
	assert.Error(t, noRep.Validate())
}

func TestCreateProductRequestValidate(t *testing.T) {
	valid := CreateProductRequest{Name: "Empanada", Price: decimal.NewFromFloat(2.50), Stock: 10}
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.Price = decimal.NewFromFloat(-1)
	assert.Error(t, negative.Validate())
}

func TestCloseOrderRequestValidate(t *testing.T) {
	assert.NoError(t, CloseOrderRequest{PaymentMethod: 0, ReferenceNumber: "12345678"}.Validate())
	assert.NoError(t, CloseOrderRequest{PaymentMethod: 1}.Validate())
	assert.Error(t, CloseOrderRequest{PaymentMethod: 7}.Validate())
}

func TestUpdateStatusRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateStatusRequest{Status: 0}.Validate())
	assert.NoError(t, UpdateStatusRequest{Status: 2}.Validate())
	assert.Error(t, UpdateStatusRequest{Status: 3}.Validate())
}

func TestAppendExchangeRateRequestValidate(t *testing.T) {
	assert.NoError(t, AppendExchangeRateRequest{Rate: decimal.NewFromFloat(36.50)}.Validate())
	assert.Error(t, AppendExchangeRateRequest{}.Validate())
	assert.Error(t, AppendExchangeRateRequest{Rate: decimal.NewFromFloat(-1)}.Validate())
}
