package estoque

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
)

// ResultadoSaida é o resultado estruturado da validação de uma saída.
// Falhas de regra de negócio nunca viram erro Go: o chamador usa Mensagem
// para exibir o motivo ao usuário.
type ResultadoSaida struct {
	Valida            bool
	EstoqueDisponivel decimal.Decimal
	Mensagem          string
}

// ValidarSaida valida uma saída proposta contra um saldo recém-computado.
// Validação reprovada não tem efeito colateral algum: nenhum registro é
// anexado.
func ValidarSaida(produto ProdutoID, quantidade decimal.Decimal, notas []entity.NotaFiscal, movs []entity.Movimentacao) ResultadoSaida {
	return ValidarSaidaContraSaldo(CalcularSaldo(produto, notas, movs), quantidade)
}

// ValidarSaidaContraSaldo aplica as regras de saída sobre um saldo já
// calculado. Usado pelo caso de uso de saída para reaproveitar o saldo
// computado dentro da mesma transação.
func ValidarSaidaContraSaldo(saldo SaldoProduto, quantidade decimal.Decimal) ResultadoSaida {
	if !quantidade.IsPositive() {
		return ResultadoSaida{
			Valida:            false,
			EstoqueDisponivel: saldo.EstoqueAtual,
			Mensagem:          "quantidade deve ser maior que zero",
		}
	}
	if quantidade.GreaterThan(saldo.EstoqueAtual) {
		return ResultadoSaida{
			Valida:            false,
			EstoqueDisponivel: saldo.EstoqueAtual,
			Mensagem:          fmt.Sprintf("estoque insuficiente: %s unidades disponíveis", saldo.EstoqueAtual.String()),
		}
	}
	return ResultadoSaida{Valida: true, EstoqueDisponivel: saldo.EstoqueAtual}
}
